package convert

import "encoding/xml"

// xmlNode is a generic, order-preserving XML tree, since the converter
// needs to walk arbitrary Shimeji-ee markup recursively rather than bind
// to a fixed schema.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
}

func parseXML(data []byte) (*xmlNode, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) attrDefault(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n *xmlNode) childrenNamed(name string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// walk visits n and every descendant, depth-first, document order.
func (n *xmlNode) walk(visit func(*xmlNode)) {
	visit(n)
	for i := range n.Children {
		n.Children[i].walk(visit)
	}
}
