package deckcode

// Version is the layout tag carried in the high nibble of the first
// payload byte.
type Version uint8

const (
	// VersionLegacy decks have a two byte header and no name.
	VersionLegacy Version = 1
	// Version2 adds the name length byte to the header.
	Version2 Version = 2

	CurrentVersion = Version2
)

const (
	// Prefix is prepended to every encoded token.
	Prefix = "ADC"

	// HeaderSize is the header length for Version2 and later.
	HeaderSize = 3

	// HeroCount is the number of heroes every encodable deck carries.
	HeroCount = 5

	// MaxNameLength caps the encoded name in bytes.
	MaxNameLength = 63

	// MaxEntrySize bounds a single serialized hero or card entry.
	MaxEntrySize = 11
)

const (
	heroCountBits  = 3
	entryDeltaBits = 5
	chunkBits      = 7

	// countCodeExtended in the top two bits of an entry header means the
	// real count follows the id delta as its own varint.
	countCodeExtended = 0x03
)

// layout describes where the entry section begins for a version.
type layout struct {
	headerSize    int
	hasNameLength bool
}

func layoutFor(v Version) (layout, bool) {
	switch {
	case v <= VersionLegacy:
		return layout{headerSize: 2}, true
	case v <= CurrentVersion:
		return layout{headerSize: HeaderSize, hasNameLength: true}, true
	default:
		return layout{}, false
	}
}
