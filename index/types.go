// Package index implements the per-message and per-word descriptor
// tables, the metadata store, and the two-tier (frozen/dynamic)
// consolidated façade described in spec §3 and §4.3.
package index

import "fmt"

// ZgramId is a 64-bit, producer-assigned, monotonically non-decreasing
// message identifier. Gaps are permitted; it is not densely packed.
type ZgramId uint64

// ZgramOff is a dense, sequential index into the zgram-info table,
// distinct from ZgramId.
type ZgramOff uint32

// WordOff is a dense, sequential index into the word-info table.
type WordOff uint32

// FieldTag names one of the four fields a zgram is split into.
type FieldTag uint8

const (
	Sender FieldTag = iota
	Signature
	Instance
	Body
	numFieldTags
)

func (t FieldTag) String() string {
	switch t {
	case Sender:
		return "sender"
	case Signature:
		return "signature"
	case Instance:
		return "instance"
	case Body:
		return "body"
	default:
		return fmt.Sprintf("FieldTag(%d)", uint8(t))
	}
}

// FieldMask is a 4-bit set over {sender, signature, instance, body}.
type FieldMask uint8

const (
	MaskNone    FieldMask = 0
	MaskDefault           = FieldMask(1<<Sender) | FieldMask(1<<Instance) | FieldMask(1<<Body)
	MaskAll     FieldMask = FieldMask(1<<numFieldTags) - 1
)

// Contains reports whether mask includes tag.
func (mask FieldMask) Contains(tag FieldTag) bool {
	return mask&(1<<tag) != 0
}

// FieldMaskOf builds a mask from a set of tags.
func FieldMaskOf(tags ...FieldTag) FieldMask {
	var m FieldMask
	for _, t := range tags {
		m |= 1 << t
	}
	return m
}

func (mask FieldMask) String() string {
	if mask == MaskNone {
		return "none"
	}
	if mask == MaskAll {
		return "all"
	}
	s := ""
	for t := FieldTag(0); t < numFieldTags; t++ {
		if mask.Contains(t) {
			if s != "" {
				s += ","
			}
			s += t.String()
		}
	}
	return s
}

// ZgramInfo is the fixed-size per-message descriptor (spec §3).
// Invariant: the concatenation sender ∥ signature ∥ instance ∥ body
// starting at StartingWordOffset gives this message's words in that
// exact field order.
type ZgramInfo struct {
	TimeSecs            int64
	LocationInLog       int64
	StartingWordOffset  WordOff
	ZgramId             ZgramId
	SenderWordLength    uint16
	SignatureWordLength uint16
	InstanceWordLength  uint16
	BodyWordLength      uint16
}

// FieldBounds returns the half-open [begin,end) WordOff range this zgram
// occupies for field tag.
func (z ZgramInfo) FieldBounds(tag FieldTag) (begin, end WordOff) {
	off := z.StartingWordOffset
	lens := [numFieldTags]uint16{z.SenderWordLength, z.SignatureWordLength, z.InstanceWordLength, z.BodyWordLength}
	for t := FieldTag(0); t < tag; t++ {
		off += WordOff(lens[t])
	}
	return off, off + WordOff(lens[tag])
}

// TotalWords is the sum of all four field lengths.
func (z ZgramInfo) TotalWords() uint16 {
	return z.SenderWordLength + z.SignatureWordLength + z.InstanceWordLength + z.BodyWordLength
}

// WordInfo is the packed per-word descriptor (spec §3).
type WordInfo struct {
	ZgramOffset ZgramOff
	Tag         FieldTag
}
