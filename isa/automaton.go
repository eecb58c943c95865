package isa

import (
	"fmt"
	"strings"
)

type edgeKind int

const (
	edgeMnemonic edgeKind = iota
	edgeOperand
	edgeTerminal
)

// edge keys one transition out of a branch node. The terminal edge marks
// "the operand sequence is complete here"; it is always the last edge on a
// path and the only one leading to a leaf.
type edge struct {
	kind    edgeKind
	name    string
	operand OperandKind
}

func mnemonicEdge(name string) edge {
	return edge{kind: edgeMnemonic, name: name}
}

func operandEdge(k OperandKind) edge {
	return edge{kind: edgeOperand, operand: k}
}

var terminalEdge = edge{kind: edgeTerminal}

// Node is one automaton node: a branch with outgoing edges, or a leaf
// holding an opcode bit-string under the terminal edge of its parent.
type Node struct {
	opcode   string
	children map[edge]*Node
}

func newBranch() *Node {
	return &Node{children: make(map[edge]*Node)}
}

// branch returns the child for e, creating an empty branch when absent.
func (n *Node) branch(e edge) *Node {
	child, ok := n.children[e]
	if !ok {
		child = newBranch()
		n.children[e] = child
	}
	return child
}

// Next follows the edge for one more operand kind. The second result is
// false when no instruction variant continues with that kind.
func (n *Node) Next(k OperandKind) (*Node, bool) {
	child, ok := n.children[operandEdge(k)]
	return child, ok
}

// Opcode follows the terminal edge and reports whether the operand sequence
// walked so far already completes an instruction.
func (n *Node) Opcode() (string, bool) {
	leaf, ok := n.children[terminalEdge]
	if !ok {
		return "", false
	}
	return leaf.opcode, true
}

// Set is the instruction-set automaton plus the mnemonic and register
// vocabularies derived from it. Built once, read-only afterwards.
type Set struct {
	root      *Node
	defs      []Instruction
	mnemonics map[string]bool
	registers map[string]bool
}

// Build constructs the automaton from instruction definitions. Two
// definitions sharing the same full mnemonic and operand-kind path are a
// configuration bug and fail the build rather than overwriting each other.
func Build(defs []Instruction) (*Set, error) {
	s := &Set{
		root:      newBranch(),
		mnemonics: make(map[string]bool),
		registers: make(map[string]bool),
	}
	for _, def := range defs {
		if err := s.add(def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) add(def Instruction) error {
	if err := checkOpcode(def.Opcode); err != nil {
		return fmt.Errorf("%s (%s): %w", def.Mnemonic, def.Name, err)
	}
	def.Mnemonic = strings.ToUpper(def.Mnemonic)
	s.mnemonics[def.Mnemonic] = true

	node := s.root.branch(mnemonicEdge(def.Mnemonic))
	for i, k := range def.Operands {
		if k.Class == ClassRegister {
			k.Register = strings.ToUpper(k.Register)
			def.Operands[i] = k
			s.registers[k.Register] = true
		}
		node = node.branch(operandEdge(k))
	}
	if _, ok := node.children[terminalEdge]; ok {
		return fmt.Errorf("duplicate instruction encoding for %s %s", def.Mnemonic, kindList(def.Operands))
	}
	node.children[terminalEdge] = &Node{opcode: def.Opcode}
	s.defs = append(s.defs, def)
	return nil
}

// checkOpcode validates an opcode bit-string: literal '0'/'1' characters, a
// non-empty multiple of eight so every instruction encodes to whole bytes.
func checkOpcode(opcode string) error {
	if len(opcode) == 0 || len(opcode)%8 != 0 {
		return fmt.Errorf("opcode %q must be a non-empty multiple of 8 bits", opcode)
	}
	for _, c := range opcode {
		if c != '0' && c != '1' {
			return fmt.Errorf("opcode %q may only contain '0' and '1'", opcode)
		}
	}
	return nil
}

func kindList(kinds []OperandKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// Root returns the entry node for a mnemonic.
func (s *Set) Root(mnemonic string) (*Node, bool) {
	node, ok := s.root.children[mnemonicEdge(strings.ToUpper(mnemonic))]
	return node, ok
}

// IsMnemonic reports whether name is a known mnemonic, ignoring case.
func (s *Set) IsMnemonic(name string) bool {
	return s.mnemonics[strings.ToUpper(name)]
}

// IsRegister reports whether name is a known register, ignoring case.
func (s *Set) IsRegister(name string) bool {
	return s.registers[strings.ToUpper(name)]
}

// Instructions returns the definitions the set was built from, in order.
func (s *Set) Instructions() []Instruction {
	return s.defs
}
