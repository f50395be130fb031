package fields

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/k3a/html2text"
	"github.com/orenza/orenzadb/pkg/ec"
	"github.com/orenza/orenzadb/pkg/model"
)

// ExplorEnz dump tables used for the intermediate model.
const (
	EntryTable = "entry"
	HistTable  = "hist"
	ClassTable = "class"
)

// Actions of the history table that withdraw an entry.
const (
	ActionDeleted     = "deleted"
	ActionTransferred = "transferred"
)

var created = regexp.MustCompile(`created ([0-9]*)`)

// ExplorEnzData is the result of parsing an ExplorEnz XML dump.
type ExplorEnzData struct {
	Enzymes       model.Enzymes
	Nomenclatures model.Nomenclatures
	// Removed lists EC numbers withdrawn by the history table.
	Removed []string
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlRow struct {
	Fields []xmlField `xml:"field"`
}

func (r xmlRow) values() map[string]string {
	res := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		res[f.Name] = gnlib.FixUtf8(f.Value)
	}
	return res
}

// ExplorEnz parses the mysqldump XML of the ExplorEnz database. Records
// are row elements of the entry, hist and class table_data sections.
// Withdrawn entries are removed after all rows are read, so the order of
// the sections does not matter.
func ExplorEnz(r io.Reader) (*ExplorEnzData, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// The dump is not always valid UTF-8 and encoding/xml rejects such input.
	text := gnlib.FixUtf8(string(bs))

	res := &ExplorEnzData{
		Enzymes:       make(model.Enzymes),
		Nomenclatures: make(model.Nomenclatures),
	}
	years := make(map[string]string)
	var withdrawn []string

	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false
	var table string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot decode ExplorEnz XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "table_data":
				table = attr(el, "name")
			case "row":
				var row xmlRow
				if err = dec.DecodeElement(&row, &el); err != nil {
					return nil, fmt.Errorf("cannot decode %s row: %w", table, err)
				}
				vals := row.values()
				switch table {
				case EntryTable:
					if enz, ok := EnzymeEntry(vals); ok {
						res.Enzymes[enz.ECNumber] = enz
					}
				case HistTable:
					ecNumber, year, action := HistEntry(vals)
					if year != "" {
						years[ecNumber] = year
					}
					if action == ActionDeleted || action == ActionTransferred {
						withdrawn = append(withdrawn, ecNumber)
					}
				case ClassTable:
					if nom, ok := NomenclatureEntry(vals); ok {
						res.Nomenclatures[nom.EC] = nom
					}
				}
			}
		case xml.EndElement:
			if el.Name.Local == "table_data" {
				table = ""
			}
		}
	}

	for k, v := range years {
		if enz, ok := res.Enzymes[k]; ok {
			enz.Created = v
		}
	}
	for _, v := range withdrawn {
		if res.Enzymes.Remove(v) > 0 {
			res.Removed = append(res.Removed, v)
		}
	}
	return res, nil
}

// EnzymeEntry converts the fields of an entry row into an Enzyme.
// A row without an EC number is excluded.
func EnzymeEntry(vals map[string]string) (*model.Enzyme, bool) {
	ecNumber := strings.TrimSpace(vals["ec_num"])
	if ecNumber == "" {
		return nil, false
	}
	res := &model.Enzyme{
		ECNumber:     ecNumber,
		AcceptedName: vals["accepted_name"],
		SysName:      vals["sys_name"],
		OtherNames:   vals["other_names"],
		Reaction:     vals["reaction"],
		Comments:     vals["comments"],
		Links:        vals["links"],
		CasNum:       vals["cas_num"],
		Glossary:     vals["glossary"],
		Class:        vals["class"],
		Subclass:     vals["subclass"],
		Subsubclass:  vals["subsubclass"],
		Serial:       vals["serial"],
	}
	return res, true
}

// HistEntry extracts the EC number, the creation year and the action of a
// hist row. The year is empty if the history note does not mention it.
func HistEntry(vals map[string]string) (ecNumber, year, action string) {
	ecNumber = strings.TrimSpace(vals["ec_num"])
	action = strings.TrimSpace(vals["action"])
	if m := created.FindStringSubmatch(vals["history"]); m != nil {
		year = m[1]
	}
	return ecNumber, year, action
}

// NomenclatureEntry converts a class row into a node of the class
// hierarchy. The heading is stripped of HTML markup.
func NomenclatureEntry(vals map[string]string) (*model.NomenclatureNode, bool) {
	first := strings.TrimSpace(vals["class"])
	second := strings.TrimSpace(vals["subclass"])
	third := strings.TrimSpace(vals["subsubclass"])
	if first == "" {
		return nil, false
	}
	if second == "" {
		second = "0"
	}
	if third == "" {
		third = "0"
	}

	res := &model.NomenclatureNode{
		EC:           ec.FromClass(first, second, third),
		FirstNumber:  first,
		SecondNumber: second,
		ThirdNumber:  third,
		Heading:      StripTags(vals["heading"]),
	}
	return res, true
}

// StripTags removes HTML markup and decodes entities.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return strings.TrimSpace(html2text.HTML2Text(s))
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
