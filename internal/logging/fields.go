package logging

// Structured field keys.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldFiles  = "files"
	FieldJobs   = "jobs"

	// Parse fields.
	FieldRule     = "rule"
	FieldStage    = "stage"
	FieldBytes    = "bytes"
	FieldNodes    = "nodes"
	FieldMaxDepth = "max_depth"
	FieldOffset   = "offset"

	// Output fields.
	FieldFormat  = "format"
	FieldFlavor  = "flavor"
	FieldLang    = "lang"
	FieldChanged = "changed"

	// Config fields.
	FieldConfig = "config"
	FieldSource = "source"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
