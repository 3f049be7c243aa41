package conv

import "strings"

// Path represents attribute path, the receiver is the last segment
type Path struct {
	name   string
	parent *Path
}

// Append returns path extended with names, empty names are skipped
func (p *Path) Append(names ...string) *Path {
	ret := p
	for _, name := range names {
		if name == "" {
			continue
		}
		ret = &Path{name: name, parent: ret}
	}
	return ret
}

// Names returns path segments from the root
func (p *Path) Names() []string {
	var ret []string
	for node := p; node != nil; node = node.parent {
		ret = append(ret, node.name)
	}
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}

func (p *Path) String() string {
	if p == nil {
		return ""
	}
	return strings.Join(p.Names(), ".")
}
