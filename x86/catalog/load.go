// This file is part of x86dsm.
//
// x86dsm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// x86dsm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with x86dsm.  If not, see <https://www.gnu.org/licenses/>.

package catalog

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/x86dsm/x86dsm/curated"
	"github.com/x86dsm/x86dsm/logger"
)

// LoadError is the pattern for all errors returned by the catalog loaders.
const LoadError = "catalog: %v"

// the built-in catalog
//
//go:embed instructions.csv
var builtinCSV []byte

var builtin struct {
	once sync.Once
	cat  *Catalog
	err  error
}

// Builtin returns the catalog compiled into the program. The catalog is
// parsed the first time the function is called and the same instance is
// returned on every call.
func Builtin() (*Catalog, error) {
	builtin.once.Do(func() {
		builtin.cat, builtin.err = ParseCSV(bytes.NewReader(builtinCSV))
		if builtin.err == nil {
			logger.Logf(logger.Allow, "catalog", "built-in catalog has %d descriptors", builtin.cat.Len())
		}
	})
	return builtin.cat, builtin.err
}

// LoadFile loads a catalog from a file. Files with the .csv extension are
// parsed as CSV. All other files are parsed as JSON.
func LoadFile(filename string) (*Catalog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer f.Close()

	var cat *Catalog
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		cat, err = ParseCSV(f)
	} else {
		cat, err = ParseJSON(f)
	}
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "catalog", "loaded %d descriptors from %s", cat.Len(), filename)

	return cat, nil
}

// jsonRow is a single object in a JSON catalog.
type jsonRow struct {
	Mnemonic string `json:"mnemonic"`
	Op1      string `json:"op1"`
	Op2      string `json:"op2"`
	Op3      string `json:"op3"`
	Op4      string `json:"op4"`
	Prefix   string `json:"prefix"`
	Dopc     string `json:"dopc"`
	Opc      string `json:"opc"`
	Opc2     string `json:"opc2"`
	Rop      string `json:"rop"`
	Lock     bool   `json:"lock"`
	Ext      bool   `json:"ext"`
}

// ParseJSON parses a catalog from a JSON array of row objects. Unknown fields
// in the objects are ignored.
func ParseJSON(r io.Reader) (*Catalog, error) {
	var rows []jsonRow

	err := json.NewDecoder(r).Decode(&rows)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	descs := make([]Descriptor, 0, len(rows))
	for i, jr := range rows {
		r := row{
			mnemonic: jr.Mnemonic,
			ops:      [NumOperands]string{jr.Op1, jr.Op2, jr.Op3, jr.Op4},
			prefix:   jr.Prefix,
			dopc:     jr.Dopc,
			opc:      jr.Opc,
			opc2:     jr.Opc2,
			rop:      jr.Rop,
			lock:     jr.Lock,
			ext:      jr.Ext,
		}
		d, err := r.descriptor(len(descs))
		if err != nil {
			return nil, curated.Errorf(LoadError, curated.Errorf("row %d: %v", i, err))
		}
		descs = append(descs, d)
	}

	return New(descs), nil
}

// CSV field positions.
const (
	fieldMnemonic = iota
	fieldOp1
	fieldOp2
	fieldOp3
	fieldOp4
	fieldPrefix
	fieldMap
	fieldOpc
	fieldOpc2
	fieldRop
	fieldLock
	fieldExt
	numFields
)

// the lock and ext fields are optional
const minFields = fieldLock

// ParseCSV parses a catalog in CSV format. Lines beginning with # are
// comments. The columns are:
//
//	mnemonic, op1, op2, op3, op4, prefix, map, opc, opc2, rop, lock, ext
//
// The lock and ext columns can be omitted.
func ParseCSV(r io.Reader) (*Catalog, error) {
	c := csv.NewReader(r)
	c.Comment = '#'
	c.TrimLeadingSpace = true

	// allow variable number of fields per record. the number of fields is
	// checked for each record below
	c.FieldsPerRecord = -1

	descs := make([]Descriptor, 0, 256)

	for {
		rec, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}

		line, _ := c.FieldPos(0)

		if len(rec) < minFields || len(rec) > numFields {
			return nil, curated.Errorf(LoadError, curated.Errorf("line %d: wrong number of fields (%d)", line, len(rec)))
		}

		r := row{
			mnemonic: rec[fieldMnemonic],
			ops:      [NumOperands]string{rec[fieldOp1], rec[fieldOp2], rec[fieldOp3], rec[fieldOp4]},
			prefix:   rec[fieldPrefix],
			dopc:     rec[fieldMap],
			opc:      rec[fieldOpc],
			opc2:     rec[fieldOpc2],
			rop:      rec[fieldRop],
		}

		if len(rec) > fieldLock {
			r.lock, err = parseBool(rec[fieldLock])
			if err != nil {
				return nil, curated.Errorf(LoadError, curated.Errorf("line %d: lock: %v", line, err))
			}
		}
		if len(rec) > fieldExt {
			r.ext, err = parseBool(rec[fieldExt])
			if err != nil {
				return nil, curated.Errorf(LoadError, curated.Errorf("line %d: ext: %v", line, err))
			}
		}

		d, err := r.descriptor(len(descs))
		if err != nil {
			return nil, curated.Errorf(LoadError, curated.Errorf("line %d: %v", line, err))
		}
		descs = append(descs, d)
	}

	return New(descs), nil
}

// parseBool parses the boolean fields of a CSV row. an empty field is false.
func parseBool(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "FALSE":
		return false, nil
	case "TRUE":
		return true, nil
	}
	return false, curated.Errorf("invalid boolean (%s)", s)
}
