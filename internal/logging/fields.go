package logging

// Field names shared by every package so log output stays greppable.
const (
	FieldFile       = "file_path"
	FieldFolder     = "folder"
	FieldYear       = "year"
	FieldDomain     = "domain"
	FieldTitle      = "title"
	FieldField      = "field"
	FieldOutcome    = "outcome"
	FieldBackend    = "backend"
	FieldOperation  = "operation"
	FieldReason     = "reason"
	FieldError      = "error"
	FieldCount      = "count"
	FieldTotal      = "total"
	FieldOutputFile = "output_file"
	FieldTarget     = "target"
	FieldDryRun     = "dry_run"
)
