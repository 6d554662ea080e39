package collection

import (
	"strconv"

	"github.com/trezcool/amenagement/core"
)

// GenerateCode returns a business key of the form "<prefix><unix millis>", bumped until it is not taken.
func GenerateCode(prefix string, taken func(string) bool) string {
	n := core.NowFunc().UnixMilli()
	code := prefix + strconv.FormatInt(n, 10)
	for taken(code) {
		n++
		code = prefix + strconv.FormatInt(n, 10)
	}
	return code
}
