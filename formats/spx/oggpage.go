// SPDX-License-Identifier: EPL-2.0

package spx

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Ogg page flags.
const (
	flagContinued = 0x01
	flagBOS       = 0x02
	flagEOS       = 0x04
)

const maxSegmentSize = 255

// crcTable implements the Ogg page checksum: CRC-32 with polynomial
// 0x04c11db7, no bit reflection and zero initial value.
var crcTable [256]uint32

func init() {
	for i := range crcTable {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		crcTable[i] = r
	}
}

func oggCRC(data []byte) uint32 {
	var crc uint32
	for _, b := range data {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// pageWriter emits one Ogg page per call. Packets never span pages,
// which keeps every packet under 255*255 bytes; audio packets are a
// few hundred bytes at most.
type pageWriter struct {
	w      io.Writer
	serial uint32
	seq    uint32
}

// writePage wraps a single whole packet in an Ogg page.
func (p *pageWriter) writePage(packet []byte, granule uint64, flags byte) error {
	nsegs := len(packet)/maxSegmentSize + 1
	if nsegs > 255 {
		return fmt.Errorf("spx: packet of %d bytes does not fit one page", len(packet))
	}

	page := make([]byte, 27+nsegs+len(packet))
	copy(page[0:4], "OggS")
	page[4] = 0 // stream structure version
	page[5] = flags
	binary.LittleEndian.PutUint64(page[6:], granule)
	binary.LittleEndian.PutUint32(page[14:], p.serial)
	binary.LittleEndian.PutUint32(page[18:], p.seq)
	// page[22:26] is the checksum, filled in below.
	page[26] = byte(nsegs)

	rest := len(packet)
	for i := range nsegs {
		if rest >= maxSegmentSize {
			page[27+i] = maxSegmentSize
			rest -= maxSegmentSize
		} else {
			page[27+i] = byte(rest)
			rest = 0
		}
	}
	copy(page[27+nsegs:], packet)

	binary.LittleEndian.PutUint32(page[22:], oggCRC(page))

	p.seq++
	if _, err := p.w.Write(page); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
