// Package jobfile decodes HCL batch files describing several conversions.
//
// A batch file holds an optional defaults block and one job block per
// conversion. Job attributes override defaults. The delim variable exposes
// every recognized delimiter by name, which avoids typing raw tabs or
// carriage returns:
//
//	defaults {
//	  input_delimiter  = delim.semicolon
//	  output_delimiter = delim.tab
//	  format           = "linhas"
//	  output_dir       = "out"
//	}
//
//	job "sales" {
//	  input       = "sales.txt"
//	  format      = "colunas"
//	  output_name = "sales.tsv"
//	}
//
// Relative input paths are resolved against the batch file's directory.
// Output directories are left for the converter to resolve.
package jobfile
