package logging

// Standardized field names for structured logging.
// Keeping these consistent makes the extraction logs easy to filter when
// diagnosing why a page produced fewer movements than expected.
const (
	FieldExtractor  = "extractor"
	FieldCandidates = "candidates"
	FieldCount      = "count"
	FieldRow        = "row"
	FieldFile       = "file_path"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldDate       = "date"
	FieldAmount     = "amount"
	FieldDelimiter  = "delimiter"
	FieldDiscarded  = "discarded"
	FieldDuplicates = "duplicates"
)
