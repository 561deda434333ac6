package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Warehouse geometry. Lines are lettered aisles A..E, each holding 40 slots
// split into blocks of 10 (5 near-row cells followed by 5 far-row cells).
const (
	LineCount     = 5
	SlotCount     = 40
	BlockSize     = 10
	RowSize       = 5
	MinShelf      = 1
	MaxShelf      = 4
	blockStride   = RowSize + 1 // one inter-block aisle cell between blocks
	exitSlot      = SlotCount
	exitBlock     = SlotCount / BlockSize
	EntryCode     = "ENTRY"
	ExitCode      = "EXIT"
	firstLineChar = 'A'
)

// ErrInvalidLocationFormat is returned when a location code cannot be parsed.
var ErrInvalidLocationFormat = errors.New("invalid location format")

var (
	entryTokens = []string{"문", "door", "start", "entry", "entrance"}
	exitTokens  = []string{"포장대", "packing", "end", "exit"}
)

// Position is one stop in the warehouse. It is a comparable value: two
// positions are equal iff every field matches.
type Position struct {
	Code    string
	Line    int
	Slot    int
	Shelf   int // 0 when the code carries no shelf tier
	IsEntry bool
	IsExit  bool
	X       int
	Y       int
	Block   int
	Row     int // 0 = near row, 1 = far row
}

// Entry returns the fixed door position every route starts from.
func Entry() Position {
	return Position{Code: EntryCode, IsEntry: true}
}

// Exit returns the fixed packing-station position every route ends at.
// It sits one aisle cell past the last block of line E.
func Exit() Position {
	return Position{
		Code:   ExitCode,
		Line:   LineCount - 1,
		Slot:   exitSlot,
		IsExit: true,
		X:      exitBlock * blockStride,
		Block:  exitBlock,
	}
}

// IsSentinel reports whether p is the entry or the exit.
func (p Position) IsSentinel() bool { return p.IsEntry || p.IsExit }

func (p Position) String() string { return p.Code }

// Parse turns a location code such as "A5", "c17-3", "door" or "포장대"
// into a Position.
func Parse(code string) (Position, error) {
	s := strings.TrimSpace(code)
	if s == "" {
		return Position{}, fmt.Errorf("parse location: empty code: %w", ErrInvalidLocationFormat)
	}

	if matchesToken(s, entryTokens) {
		return Entry(), nil
	}
	if matchesToken(s, exitTokens) {
		return Exit(), nil
	}

	lineChar := strings.ToUpper(s[:1])[0]
	if lineChar < firstLineChar || lineChar >= firstLineChar+LineCount {
		return Position{}, fmt.Errorf("parse location %q: line %q outside A-E: %w", code, s[:1], ErrInvalidLocationFormat)
	}
	line := int(lineChar - firstLineChar)

	parts := strings.Split(s[1:], "-")
	if len(parts) > 2 {
		return Position{}, fmt.Errorf("parse location %q: too many segments: %w", code, ErrInvalidLocationFormat)
	}

	slot, err := parseBounded(parts[0], 0, SlotCount-1)
	if err != nil {
		return Position{}, fmt.Errorf("parse location %q: slot: %v: %w", code, err, ErrInvalidLocationFormat)
	}

	shelf := 0
	if len(parts) == 2 {
		shelf, err = parseBounded(parts[1], MinShelf, MaxShelf)
		if err != nil {
			return Position{}, fmt.Errorf("parse location %q: shelf: %v: %w", code, err, ErrInvalidLocationFormat)
		}
	}

	return newSlotPosition(line, slot, shelf), nil
}

// MustParse is Parse for fixtures; it panics on malformed input.
func MustParse(code string) Position {
	p, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return p
}

func newSlotPosition(line, slot, shelf int) Position {
	block := slot / BlockSize
	inBlock := slot % BlockSize
	row := 0
	if inBlock >= RowSize {
		row = 1
	}
	col := inBlock % RowSize

	code := string(rune(firstLineChar+line)) + strconv.Itoa(slot)
	if shelf > 0 {
		code += "-" + strconv.Itoa(shelf)
	}

	return Position{
		Code:  code,
		Line:  line,
		Slot:  slot,
		Shelf: shelf,
		X:     block*blockStride + col,
		Y:     row,
		Block: block,
		Row:   row,
	}
}

func parseBounded(s string, lo, hi int) (int, error) {
	if s == "" {
		return 0, errors.New("missing number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not numeric", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d outside %d-%d", n, lo, hi)
	}
	return n, nil
}

func matchesToken(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.EqualFold(s, t) {
			return true
		}
	}
	return false
}
