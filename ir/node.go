package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is a detached document value.
//
// For ObjectType and ArrayType nodes, Fields[i] is the key for the value at
// Values[i]. Array keys are decimal element indices. Scalars use the String,
// Number or Bool field according to Type; Number holds the literal text.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String string
	Number string
	Bool   bool
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		String: y.String,
		Number: y.Number,
		Bool:   y.Bool,
	}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

func (y *Node) IsLeaf() bool {
	return y.Type.IsLeaf()
}

func (y *Node) IsObjectShaped() bool {
	return y.Type.IsObjectShaped()
}

// IsDenseArray reports whether y is an array whose keys are exactly 0..n-1
// in order.
func (y *Node) IsDenseArray() bool {
	if y.Type != ArrayType {
		return false
	}
	for i, f := range y.Fields {
		if f != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func (y *Node) Len() int {
	return len(y.Values)
}

// Index returns the position of field in y, or -1.
func (y *Node) Index(field string) int {
	for i, f := range y.Fields {
		if f == field {
			return i
		}
	}
	return -1
}

// Set installs v under field, replacing any existing value.
func (y *Node) Set(field string, v *Node) {
	if i := y.Index(field); i != -1 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
	if y.Type == ArrayType && !IsIndexKey(field) {
		y.Type = ObjectType
	}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

// FromNumber creates a number node from its literal text.
func FromNumber(text string) *Node {
	return &Node{Type: NumberType, Number: text}
}

func FromInt(v int64) *Node {
	return FromNumber(strconv.FormatInt(v, 10))
}

func FromFloat(f float64) *Node {
	return FromNumber(strconv.FormatFloat(f, 'g', -1, 64))
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Type: ObjectType, Fields: []string{}, Values: []*Node{}}
}

func ToMap(node *Node) map[string]*Node {
	if !node.IsObjectShaped() {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, f := range node.Fields {
		res[f] = node.Values[i]
	}
	return res
}

// FromMap creates an object with the keys of yMap in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]string, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		res.Fields[i] = key
		res.Values[i] = yMap[key]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals creates an object keeping the order of kvs.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Fields = make([]string, len(ySlice))
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Fields[i] = strconv.Itoa(i)
		res.Values[i] = y
	}
	return res
}

func Get(y *Node, field string) *Node {
	if y == nil || !y.IsObjectShaped() {
		return nil
	}
	if i := y.Index(field); i != -1 {
		return y.Values[i]
	}
	return nil
}

// IsIndexKey reports whether field is a canonical decimal array index.
func IsIndexKey(field string) bool {
	if field == "" || (len(field) > 1 && field[0] == '0') {
		return false
	}
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return false
		}
	}
	return true
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Size returns the number of nodes in the tree rooted at y.
func (y *Node) Size() int {
	n := 0
	_ = y.Visit(func(_ *Node, isPost bool) (bool, error) {
		if !isPost {
			n++
		}
		return true, nil
	})
	return n
}
