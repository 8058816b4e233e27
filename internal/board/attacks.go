package board

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// AttackTable answers the question "which squares does a piece of this
// kind, standing on this square, attack given this occupancy?". The
// returned mask uses the Square.Bit convention.
//
// Board queries key the table by the folded piece code (see
// Piece.Fold), so implementations only need to cover white pieces plus
// the black pawn.
type AttackTable interface {
	Attacks(p Piece, from Square, occupancy uint16) uint16
}

// Pawn start squares, used for the double-step rule.
const (
	PawnStartWhite Square = 5
	PawnStartBlack Square = 10
)

// RayAttacks computes attack masks geometrically. Kings reach one
// square either way, rooks and queens slide in steps of one, bishops
// and queens slide in steps of two, knights jump two or three squares,
// and pawns attack the single square toward the enemy side. Sliding
// rays include the first occupied square and stop there.
//
// RayAttacks is the reference implementation: the attack-table file
// consumed by LookupAttacks is generated from it with WriteAttacks.
type RayAttacks struct{}

// Attacks implements AttackTable.
func (RayAttacks) Attacks(p Piece, from Square, occupancy uint16) uint16 {
	var mask uint16

	add := func(s Square) {
		if s.Valid() {
			mask |= s.Bit()
		}
	}
	ray := func(step Square) {
		for s := from + step; s.Valid(); s += step {
			mask |= s.Bit()
			if occupancy&s.Bit() != 0 {
				break
			}
		}
	}

	switch p.Fold() {
	case WhiteKing:
		add(from - 1)
		add(from + 1)
	case WhiteRook:
		ray(-1)
		ray(1)
	case WhiteBishop:
		ray(-2)
		ray(2)
	case WhiteQueen:
		ray(-1)
		ray(1)
		ray(-2)
		ray(2)
	case WhiteKnight:
		add(from - 3)
		add(from - 2)
		add(from + 2)
		add(from + 3)
	case WhitePawn:
		add(from + 1)
	case BlackPawn:
		add(from - 1)
	}
	return mask
}

// AttackKey packs a folded piece code, a from square, and an occupancy
// mask into the 24-bit key used by the attack-table file.
func AttackKey(p Piece, from Square, occupancy uint16) uint32 {
	return uint32(p.Fold())<<20 | uint32(from)<<16 | uint32(occupancy)
}

// tablePieces are the folded piece codes an attack table must cover.
var tablePieces = []Piece{WhitePawn, WhiteKnight, WhiteKing, WhiteBishop, WhiteRook, WhiteQueen, BlackPawn}

// LookupAttacks is an attack table backed by a precomputed file. It is
// loaded once at startup and immutable afterwards.
type LookupAttacks struct {
	table map[uint32]uint16
}

// Attacks implements AttackTable. A missing entry means the table file
// was generated incorrectly, so it panics rather than producing wrong
// moves.
func (t *LookupAttacks) Attacks(p Piece, from Square, occupancy uint16) uint16 {
	key := AttackKey(p, from, occupancy)
	mask, ok := t.table[key]
	if !ok {
		panic(fmt.Sprintf("attack table has no entry for piece %s from %s occupancy %016b", p, from, occupancy))
	}
	return mask
}

// Len returns the number of entries in the table.
func (t *LookupAttacks) Len() int {
	return len(t.table)
}

// LoadAttacks reads an attack-table file from disk.
func LoadAttacks(path string) (*LookupAttacks, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attack table: %w", err)
	}
	defer f.Close()
	return ReadAttacks(f)
}

// ReadAttacks parses the attack-table format: one entry per line, two
// whitespace-separated decimal integers "key value". Line order is
// irrelevant.
func ReadAttacks(r io.Reader) (*LookupAttacks, error) {
	table := make(map[uint32]uint16)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var key uint32
		var mask uint16
		if _, err := fmt.Sscan(scanner.Text(), &key, &mask); err != nil {
			return nil, fmt.Errorf("attack table line %d: %w", line, err)
		}
		table[key] = mask
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read attack table: %w", err)
	}
	return &LookupAttacks{table: table}, nil
}

// WriteAttacks streams an attack-table file covering every key a board
// query can form: each folded piece code, each from square, and each
// occupancy that includes the piece's own square. Pieces limits the
// output to the given codes; with none given the full table is written.
func WriteAttacks(w io.Writer, pieces ...Piece) error {
	if len(pieces) == 0 {
		pieces = tablePieces
	}

	bw := bufio.NewWriter(w)
	var rays RayAttacks
	for _, p := range pieces {
		for from := Square(0); from < BoardSize; from++ {
			for occ := 0; occ <= 0xFFFF; occ++ {
				occupancy := uint16(occ)
				if occupancy&from.Bit() == 0 {
					continue
				}
				mask := rays.Attacks(p, from, occupancy)
				if _, err := fmt.Fprintf(bw, "%d %d\n", AttackKey(p, from, occupancy), mask); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

// WriteAttacksFile generates the full attack-table file at path.
func WriteAttacksFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create attack table: %w", err)
	}
	if err := WriteAttacks(f); err != nil {
		f.Close()
		return fmt.Errorf("write attack table: %w", err)
	}
	return f.Close()
}
