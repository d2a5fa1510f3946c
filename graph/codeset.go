package graph

import (
	"github.com/webgraph-go/bvgraph/codes"
	"github.com/webgraph-go/bvgraph/properties"
)

// CodeSet binds a universal code to each role that is never routed
// through contextual Huffman (block count, reference, offset), and to
// every role when Huffman mode is off.
type CodeSet struct {
	Outdegree  codes.Code
	Block      codes.Code
	BlockCount codes.Code
	Offset     codes.Code
	Reference  codes.Code
	Interval   codes.Code
	Residual   codes.Code
}

// DefaultCodeSet mirrors the defaults named in the reference
// implementation's comments ("gamma for blocks and intervals, zeta for
// residuals") plus Gamma for offsets and Unary for outdegree/reference,
// matching spec.md's literal scenario E1 (an outdegree of 0 encodes as
// a single "1" bit, i.e. Unary(0)).
func DefaultCodeSet() CodeSet {
	return CodeSet{
		Outdegree:  codes.UnaryCode{},
		Block:      codes.GammaCode{},
		BlockCount: codes.GammaCode{},
		Offset:     codes.GammaCode{},
		Reference:  codes.UnaryCode{},
		Interval:   codes.GammaCode{},
		Residual:   codes.ZetaCode{},
	}
}

// roleCodes lists the (role name, code) pairs in the CodeSet, for
// writing the properties sidecar.
func (cs CodeSet) roleCodes() map[string]codes.Code {
	return map[string]codes.Code{
		properties.RoleOutdegree:  cs.Outdegree,
		properties.RoleBlock:      cs.Block,
		properties.RoleBlockCount: cs.BlockCount,
		properties.RoleOffset:     cs.Offset,
		properties.RoleReference:  cs.Reference,
		properties.RoleInterval:   cs.Interval,
		properties.RoleResidual:   cs.Residual,
	}
}

// codeSetFromProperties reconstructs the universal codes bound to each
// role that is never Huffman-coded (block count, reference, offset),
// and — when huffmanMode is false — every role.
func codeSetFromProperties(p *properties.Properties) (CodeSet, error) {
	var cs CodeSet
	assign := func(role string, dst *codes.Code) error {
		tag, ok := p.Code(role)
		if !ok {
			*dst = codes.GammaCode{}
			return nil
		}
		if tag == codes.Huffman {
			return nil // resolved separately, via the context set
		}
		c, ok := codes.ByTag(tag)
		if !ok {
			return ErrUnsupportedCode
		}
		*dst = c
		return nil
	}
	for role, dst := range map[string]*codes.Code{
		properties.RoleOutdegree:  &cs.Outdegree,
		properties.RoleBlock:      &cs.Block,
		properties.RoleBlockCount: &cs.BlockCount,
		properties.RoleOffset:     &cs.Offset,
		properties.RoleReference:  &cs.Reference,
		properties.RoleInterval:   &cs.Interval,
		properties.RoleResidual:   &cs.Residual,
	} {
		if err := assign(role, dst); err != nil {
			return cs, err
		}
	}
	return cs, nil
}
