// Package seed holds the records the collections start with.
package seed

import (
	_ "embed"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/amenagement/core/amenagement"
	"github.com/trezcool/amenagement/core/lot"
	"github.com/trezcool/amenagement/core/service"
	"github.com/trezcool/amenagement/core/student"
)

//go:embed seed.yaml
var seedYAML []byte

type Data struct {
	Students     []student.Student         `yaml:"students"`
	Lots         []lot.Lot                 `yaml:"lots"`
	Services     []service.Service         `yaml:"services"`
	Amenagements []amenagement.Amenagement `yaml:"amenagements"`
}

var (
	once   sync.Once
	data   Data
	errBad error
)

// Parse decodes a seed document.
func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, errors.Wrap(err, "decoding seed data")
	}
	return d, nil
}

// Default returns a copy of the embedded seed data. It panics if the embedded document is invalid.
func Default() Data {
	once.Do(func() { data, errBad = Parse(seedYAML) })
	if errBad != nil {
		panic(errBad)
	}
	return Data{
		Students:     append([]student.Student{}, data.Students...),
		Lots:         append([]lot.Lot{}, data.Lots...),
		Services:     append([]service.Service{}, data.Services...),
		Amenagements: append([]amenagement.Amenagement{}, data.Amenagements...),
	}
}

// Empty seeds every collection with nothing.
func Empty() Data {
	return Data{
		Students:     []student.Student{},
		Lots:         []lot.Lot{},
		Services:     []service.Service{},
		Amenagements: []amenagement.Amenagement{},
	}
}
