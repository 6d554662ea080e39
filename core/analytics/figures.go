package analytics

import (
	"bytes"
	"math"
	"strconv"

	"github.com/trezcool/amenagement/core/amenagement"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/service"
)

const notAvailable = "N/A"

// Amount is a rounded figure that may be undefined, encoded as a JSON number or "N/A".
type Amount struct {
	Value int64
	Valid bool
}

func amountOf(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return Amount{Value: int64(math.Round(f)), Valid: true}
}

func (a Amount) String() string {
	if !a.Valid {
		return notAvailable
	}
	return strconv.FormatInt(a.Value, 10)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte(`"` + notAvailable + `"`), nil
	}
	return []byte(strconv.FormatInt(a.Value, 10)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`"`+notAvailable+`"`)) || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*a = Amount{Value: v, Valid: true}
	return nil
}

// Percent is part/total*100 rounded to the nearest integer, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// CompletionRate is the share of finished amenagements, in percent.
func CompletionRate(as []amenagement.Amenagement) int {
	var done int
	for _, a := range as {
		if a.Statut == amenagement.StatusDone {
			done++
		}
	}
	return Percent(done, len(as))
}

// CostPerDay is cout/duree rounded, N/A when duree is not positive.
func CostPerDay(s service.Service) Amount {
	if s.Duree <= 0 {
		return Amount{}
	}
	return amountOf(s.Cout / float64(s.Duree))
}

// PricePerSquareMeter is prix/superficie rounded, N/A without a price or a positive area.
func PricePerSquareMeter(l lot.Lot) Amount {
	if l.Prix == nil || *l.Prix <= 0 || l.Superficie <= 0 {
		return Amount{}
	}
	return amountOf(*l.Prix / l.Superficie)
}

// Mean is the rounded average, N/A for an empty set.
func Mean(values []float64) Amount {
	if len(values) == 0 {
		return Amount{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return amountOf(sum / float64(len(values)))
}
