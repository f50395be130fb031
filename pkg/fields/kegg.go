package fields

import (
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/orenza/orenzadb/pkg/ec"
	"github.com/orenza/orenzadb/pkg/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PathwayPrefix starts the links of pathway pages on the KEGG index.
const PathwayPrefix = "/pathway/"

var pathwayClass = regexp.MustCompile(`^\d+\.\d+ (.+)`)

// PathwayLink is a pathway found on the KEGG pathway index.
type PathwayLink struct {
	ID    string
	Title string
	Class string
	// Href is the link as it appears on the index page.
	Href string
}

// KEGGIndex lists pathway links of the KEGG pathway index page. Every
// link is assigned to the class of the last heading before it that looks
// like "1.2 Energy metabolism". The first link of a pathway wins.
func KEGGIndex(r io.Reader) ([]PathwayLink, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var res []PathwayLink
	seen := make(map[string]struct{})
	var class string
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		if isHeading(n) {
			if m := pathwayClass.FindStringSubmatch(nodeText(n)); m != nil {
				class = strings.TrimSpace(m[1])
			}
			continue
		}
		if n.DataAtom != atom.A {
			continue
		}
		href := attrVal(n, "href")
		if !strings.HasPrefix(href, PathwayPrefix) {
			continue
		}
		id := pathwayID(href)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, PathwayLink{
			ID:    id,
			Title: nodeText(n),
			Class: class,
			Href:  href,
		})
	}
	return res, nil
}

// KEGGPathway collects EC numbers from title attributes of rect shapes of
// a pathway diagram page. EC numbers are deduplicated keeping the order of
// the first appearance.
func KEGGPathway(link PathwayLink, r io.Reader) (*model.Pathway, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	res := &model.Pathway{
		ID:    link.ID,
		Title: link.Title,
		Class: link.Class,
	}
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || attrVal(n, "shape") != "rect" {
			continue
		}
		for _, v := range ec.FindAll(attrVal(n, "title")) {
			if !slices.Contains(res.ECs, v) {
				res.ECs = append(res.ECs, v)
			}
		}
	}
	return res, nil
}

// Pathways builds the pathway mapping. Pathways without EC numbers are
// kept, they still carry a title and a class.
func Pathways(pws []*model.Pathway) model.Pathways {
	res := make(model.Pathways, len(pws))
	for _, v := range pws {
		if v == nil {
			continue
		}
		res[v.ID] = v
	}
	return res
}

func pathwayID(href string) string {
	id := strings.TrimPrefix(href, PathwayPrefix)
	if i := strings.IndexAny(id, "/?#"); i >= 0 {
		id = id[:i]
	}
	return id
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.B, atom.Strong:
		return true
	}
	return false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
