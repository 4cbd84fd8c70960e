// Package mirror derives the fixed layout snapshot of game state
// exported to external controllers once per frame.
package mirror

import (
	"encoding/binary"

	"github.com/thelolagemann/gbmirror/internal/types"
)

const (
	// Size is the length of a snapshot.
	Size = 0x68
	// VisibleSize is the length of the part of a snapshot exported
	// unless hidden fields are requested.
	VisibleSize = 0x54
)

// Snapshot offsets.
const (
	FrameCounter = 0x000
	MapBank      = 0x004
	MapID        = 0x005
	PlayerX      = 0x006
	PlayerY      = 0x007
	PartyCount   = 0x008
	PartyStart   = 0x009
	InBattle     = 0x049
	EnemySpecies = 0x04A
	EnemyLevel   = 0x04B
	EnemyHP      = 0x04C
	EnemyMaxHP   = 0x04E
	Money        = 0x050
	Badges       = 0x054
	Reserved     = 0x055
	Hidden       = 0x058

	PartySlots    = 6
	PartySlotSize = 11
)

// source addresses in work and high RAM
const (
	addrMapBank      = 0xDA00
	addrMapID        = 0xDA01
	addrPlayerX      = 0xD20D
	addrPlayerY      = 0xD20E
	addrPartyCount   = 0xDA22
	addrParty        = 0xDA2A
	addrInBattle     = 0xD116
	addrEnemySpecies = 0xD0ED
	addrEnemyLevel   = 0xD0FC
	addrEnemyHP      = 0xD0FF
	addrEnemyMaxHP   = 0xD101
	addrMoney        = 0xD573
	addrBadges       = 0xD57C
	addrRNG          = 0xFFD3
)

// Source is read from without side effects.
type Source interface {
	Peek(address uint16) uint8
}

// Mirror holds the last derived snapshot and the frame counter.
type Mirror struct {
	frame uint32
	buf   [Size]byte
}

// Derive increments the frame counter and rebuilds the whole
// snapshot from src.
func (m *Mirror) Derive(src Source) {
	m.frame++
	var buf [Size]byte
	binary.LittleEndian.PutUint32(buf[FrameCounter:], m.frame)

	buf[MapBank] = src.Peek(addrMapBank)
	buf[MapID] = src.Peek(addrMapID)
	buf[PlayerX] = src.Peek(addrPlayerX)
	buf[PlayerY] = src.Peek(addrPlayerY)

	buf[PartyCount] = src.Peek(addrPartyCount)
	for i := 0; i < PartySlots*PartySlotSize; i++ {
		buf[PartyStart+i] = src.Peek(addrParty + uint16(i))
	}

	// the last two party bytes run into the battle fields and are
	// overwritten by them
	buf[InBattle] = src.Peek(addrInBattle)
	buf[EnemySpecies] = src.Peek(addrEnemySpecies)
	buf[EnemyLevel] = src.Peek(addrEnemyLevel)
	binary.LittleEndian.PutUint16(buf[EnemyHP:], peekBE16(src, addrEnemyHP))
	binary.LittleEndian.PutUint16(buf[EnemyMaxHP:], peekBE16(src, addrEnemyMaxHP))

	var money uint32
	for i := uint16(0); i < 3; i++ {
		money = money*100 + uint32(fromBCD(src.Peek(addrMoney+i)))
	}
	binary.LittleEndian.PutUint32(buf[Money:], money)
	buf[Badges] = src.Peek(addrBadges)

	// Reserved stays zero, as does most of the hidden region
	buf[Hidden] = src.Peek(addrRNG)
	buf[Hidden+1] = src.Peek(addrRNG + 1)

	m.buf = buf
}

// Frame returns the number of snapshots derived so far.
func (m *Mirror) Frame() uint32 {
	return m.frame
}

// Bytes returns a copy of the last snapshot.
func (m *Mirror) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, m.buf[:])
	return b
}

// Reset zeroes the snapshot and the frame counter.
func (m *Mirror) Reset() {
	*m = Mirror{}
}

var _ types.Stater = (*Mirror)(nil)

func (m *Mirror) Load(s *types.State) {
	m.frame = s.Read32()
	s.ReadData(m.buf[:])
}

func (m *Mirror) Save(s *types.State) {
	s.Write32(m.frame)
	s.WriteData(m.buf[:])
}

func peekBE16(src Source, address uint16) uint16 {
	return uint16(src.Peek(address))<<8 | uint16(src.Peek(address+1))
}

func fromBCD(b uint8) uint8 {
	return (b>>4)*10 + b&0x0F
}
