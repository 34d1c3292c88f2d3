package regrid

import "fmt"

// Mode selects the output orientation.
type Mode int

const (
	// RowMajor emits the grid record by record.
	RowMajor Mode = iota
	// ColumnMajor emits the transposed grid, column by column.
	ColumnMajor
)

// String returns the string representation of Mode.
func (m Mode) String() string {
	switch m {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// FormatOption is an accepted output-format token.
//
// Short and long forms are distinct accepted literals; ValidateFormat returns
// the literal it was given and Mode maps it to an orientation.
type FormatOption string

// Recognized format tokens.
const (
	FormatLinhas  FormatOption = "linhas"
	FormatL       FormatOption = "l"
	FormatColunas FormatOption = "colunas"
	FormatC       FormatOption = "c"
)

// FormatOptions returns every accepted format token.
func FormatOptions() []FormatOption {
	return []FormatOption{FormatLinhas, FormatL, FormatColunas, FormatC}
}

// ValidateFormat accepts only the recognized format tokens, compared exactly.
// Anything else fails with ErrInvalidOutputFormat.
func ValidateFormat(token string) (FormatOption, error) {
	for _, opt := range FormatOptions() {
		if token == string(opt) {
			return opt, nil
		}
	}
	return "", newError(KindInvalidOutputFormat, fmt.Sprintf("%q (accepted: linhas, l, colunas, c)", token), nil)
}

// Mode returns the orientation selected by the token.
func (f FormatOption) Mode() Mode {
	switch f {
	case FormatColunas, FormatC:
		return ColumnMajor
	default:
		return RowMajor
	}
}
