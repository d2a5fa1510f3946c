/*
Package properties reads and writes the text key/value sidecar that
pins a graph's structural parameters and the code chosen for each
role, so a decoder can refuse to read a stream it cannot interpret.
*/
package properties

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/webgraph-go/bvgraph/codes"
)

// Role names used as the left half of a compressionflags token
// (ROLE_CODE, e.g. OUTDEGREES_GAMMA).
const (
	RoleOutdegree  = "OUTDEGREES"
	RoleBlock      = "BLOCKS"
	RoleBlockCount = "BLOCKCOUNT"
	RoleOffset     = "OFFSETS"
	RoleReference  = "REFERENCES"
	RoleInterval   = "INTERVALS"
	RoleResidual   = "RESIDUALS"
)

var allRoles = []string{RoleOutdegree, RoleBlock, RoleBlockCount, RoleOffset, RoleReference, RoleInterval, RoleResidual}

// ErrFormat wraps every parse/validation failure in this package.
var ErrFormat = errors.New("properties: format error")

// Properties is the parsed contents of a <base>.properties sidecar.
type Properties struct {
	Nodes          uint64
	Arcs           uint64
	WindowSize     int
	MaxRefCount    int
	MinIntervalLen int
	ZetaK          int // 0 if no role uses Zeta

	flags map[string]codes.EncodingType
}

// New returns an empty Properties with no roles assigned.
func New() *Properties {
	return &Properties{flags: make(map[string]codes.EncodingType)}
}

// SetCode assigns the code used for role.
func (p *Properties) SetCode(role string, tag codes.EncodingType) {
	if p.flags == nil {
		p.flags = make(map[string]codes.EncodingType)
	}
	p.flags[role] = tag
}

// Code returns the code assigned to role, if any.
func (p *Properties) Code(role string) (codes.EncodingType, bool) {
	tag, ok := p.flags[role]
	return tag, ok
}

// IsHuffman reports whether outdegrees are coded through the
// contextual Huffman tables embedded in the graph stream, which also
// implies blocks, intervals and residuals are Huffman-coded.
func (p *Properties) IsHuffman() bool {
	tag, ok := p.Code(RoleOutdegree)
	return ok && tag == codes.Huffman
}

// UsesZeta reports whether any assigned role uses the Zeta code,
// meaning ZetaK must be set to a usable value.
func (p *Properties) UsesZeta() bool {
	for _, tag := range p.flags {
		if tag == codes.Zeta {
			return true
		}
	}
	return false
}

// Validate checks the internal consistency required before a decoder
// may trust this Properties: every assigned role's tag is one this
// implementation knows, and ZetaK is set whenever a role needs it.
func (p *Properties) Validate() error {
	if p.WindowSize < 0 || p.MaxRefCount < 0 || p.MinIntervalLen < 0 {
		return fmt.Errorf("%w: negative structural parameter", ErrFormat)
	}
	for role, tag := range p.flags {
		if tag == codes.Huffman {
			continue
		}
		if _, ok := codes.ByTag(tag); !ok {
			return fmt.Errorf("%w: role %s has unknown code %q", ErrFormat, role, tag)
		}
	}
	if p.UsesZeta() && p.ZetaK <= 0 {
		return fmt.Errorf("%w: a role uses Zeta but zetak is not set", ErrFormat)
	}
	return nil
}

// Marshal serializes p to the key=value text format described in the
// on-disk file contract, Latin-1 content (which ASCII keys and tokens
// satisfy directly).
func (p *Properties) Marshal() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "nodes=%d\n", p.Nodes)
	fmt.Fprintf(&buf, "arcs=%d\n", p.Arcs)
	fmt.Fprintf(&buf, "windowsize=%d\n", p.WindowSize)
	fmt.Fprintf(&buf, "maxrefcount=%d\n", p.MaxRefCount)
	fmt.Fprintf(&buf, "minintervallength=%d\n", p.MinIntervalLen)
	if p.UsesZeta() {
		fmt.Fprintf(&buf, "zetak=%d\n", p.ZetaK)
	}
	tokens := make([]string, 0, len(p.flags))
	for _, role := range allRoles {
		if tag, ok := p.flags[role]; ok {
			tokens = append(tokens, role+"_"+string(tag))
		}
	}
	sort.Strings(tokens)
	fmt.Fprintf(&buf, "compressionflags=%s\n", strings.Join(tokens, ","))
	return buf.Bytes()
}

// Parse reads a <base>.properties file's contents.
func Parse(data []byte) (*Properties, error) {
	p := New()
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line without '=': %q", ErrFormat, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		var err error
		switch key {
		case "nodes":
			p.Nodes, err = parseUint(value)
		case "arcs":
			p.Arcs, err = parseUint(value)
		case "windowsize":
			p.WindowSize, err = parseInt(value)
		case "maxrefcount":
			p.MaxRefCount, err = parseInt(value)
		case "minintervallength":
			p.MinIntervalLen, err = parseInt(value)
		case "zetak":
			p.ZetaK, err = parseInt(value)
		case "compressionflags":
			err = p.parseFlags(value)
		default:
			// Unknown keys are ignored rather than rejected, so a
			// sidecar written by a newer tool still loads.
		}
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrFormat, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return p, nil
}

func (p *Properties) parseFlags(value string) error {
	if value == "" {
		return nil
	}
	for _, tok := range strings.Split(value, ",") {
		role, code, ok := strings.Cut(tok, "_")
		if !ok {
			return fmt.Errorf("malformed compressionflags token %q", tok)
		}
		p.SetCode(role, codes.EncodingType(code))
	}
	return nil
}

func parseUint(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }
func parseInt(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	return int(v), err
}
