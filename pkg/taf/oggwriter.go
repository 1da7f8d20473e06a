// ABOUTME: Standard Ogg stream writer for split output and encoder plumbing
// ABOUTME: Variable-size pages, no TAF padding

package taf

import "bytes"

// oggTargetPayload flushes a page once its payload reaches this size,
// keeping split output in ordinary Ogg page dimensions.
const oggTargetPayload = 4096

// EncodeOggStream lays a packet sequence into a standard Ogg stream: the
// first packet gets a page of its own with the BOS flag, the second closes
// its page before audio starts, later pages flush at a target payload
// size, and the final page carries EOS. Granule positions accumulate
// 48 kHz samples from the Opus TOC.
func EncodeOggStream(packets [][]byte, serial uint32) ([]byte, error) {
	if len(packets) == 0 {
		return nil, ErrEmptyInput
	}

	var out bytes.Buffer
	var lacing, payload []byte
	var samples int64
	completed := false
	continued := false
	seq := uint32(0)

	flush := func(splitOut, eos bool) error {
		granule := samples
		if !completed {
			granule = -1
		}
		flags := byte(0)
		if seq == 0 {
			flags |= FlagBOS
		}
		if continued {
			flags |= FlagContinued
		}
		if eos {
			flags |= FlagEOS
		}
		p := &Page{
			Flags:      flags,
			GranulePos: granule,
			Serial:     serial,
			Sequence:   seq,
			Lacing:     lacing,
			Payload:    payload,
		}
		buf, err := p.Serialize()
		if err != nil {
			return err
		}
		out.Write(buf)
		seq++
		lacing, payload = nil, nil
		completed = false
		continued = splitOut
		return nil
	}

	for i, pkt := range packets {
		rem := pkt
		for {
			n := len(rem)/255 + 1
			if len(lacing)+n <= maxSegments {
				for l := len(rem); ; l -= 255 {
					if l >= 255 {
						lacing = append(lacing, 255)
					} else {
						lacing = append(lacing, byte(l))
						break
					}
				}
				payload = append(payload, rem...)
				samples += PacketSamples(pkt)
				completed = true
				break
			}
			// Lacing table full: emit what fits as a continuation run.
			m := maxSegments - len(lacing)
			if m*255 >= len(rem) {
				m = (len(rem) - 1) / 255
			}
			for j := 0; j < m; j++ {
				lacing = append(lacing, 255)
			}
			payload = append(payload, rem[:m*255]...)
			rem = rem[m*255:]
			if err := flush(m > 0, false); err != nil {
				return nil, err
			}
		}

		last := i == len(packets)-1
		if i < 2 || len(payload) >= oggTargetPayload || last {
			if err := flush(false, last); err != nil {
				return nil, err
			}
		}
	}

	return out.Bytes(), nil
}
