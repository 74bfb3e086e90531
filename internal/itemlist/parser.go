package itemlist

import (
	"encoding/xml"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

type xmlItemList struct {
	Sections []xmlSection `xml:"Section"`
}

type xmlSection struct {
	Index string    `xml:"Index,attr"`
	Name  string    `xml:"Name,attr"`
	Items []xmlItem `xml:"Item"`
}

type xmlItem struct {
	Index     string `xml:"Index,attr"`
	Name      string `xml:"Name,attr"`
	ModelFile string `xml:"ModelFile,attr"`
}

// Parse reads ItemList.xml and returns all items that reference a model file.
// Sections or items with non-numeric indices are skipped.
func Parse(xmlPath string) ([]ItemDef, error) {
	raw, err := os.ReadFile(xmlPath)
	if err != nil {
		return nil, errors.Wrapf(err, "itemlist: read %s", xmlPath)
	}
	return Decode(raw)
}

// Decode parses ItemList.xml content.
func Decode(raw []byte) ([]ItemDef, error) {
	var list xmlItemList
	if err := xml.Unmarshal(raw, &list); err != nil {
		return nil, errors.Wrap(err, "itemlist: parse")
	}

	var items []ItemDef
	for _, sec := range list.Sections {
		secIdx, err := strconv.Atoi(sec.Index)
		if err != nil {
			continue
		}
		for _, item := range sec.Items {
			if item.ModelFile == "" {
				continue
			}
			idx, err := strconv.Atoi(item.Index)
			if err != nil {
				continue
			}
			items = append(items, ItemDef{
				Section:     secIdx,
				SectionName: sec.Name,
				Index:       idx,
				Name:        item.Name,
				ModelFile:   item.ModelFile,
			})
		}
	}
	return items, nil
}

func itoa(n int) string { return strconv.Itoa(n) }
