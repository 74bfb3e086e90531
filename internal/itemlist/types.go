package itemlist

// ItemDef holds one item parsed from ItemList.xml.
type ItemDef struct {
	Section     int
	SectionName string
	Index       int
	Name        string
	ModelFile   string // e.g. "sword04.bmd"
}

// Key names the item as "section/index".
func (d ItemDef) Key() string {
	return itoa(d.Section) + "/" + itoa(d.Index)
}
