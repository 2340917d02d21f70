//go:build pcap
// +build pcap

package network

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// ReadPCAPFile replays recorded sample datagrams from a PCAP capture.
// Each UDP payload on the filtered port is decoded and handed to the
// handler exactly as a live datagram would be. This function is only
// available when building with the 'pcap' build tag.
func ReadPCAPFile(ctx context.Context, pcapFile string, udpPort int, handler SampleHandler, counters *PacketCounters) error {
	handle, err := pcap.OpenOffline(pcapFile)
	if err != nil {
		return fmt.Errorf("failed to open PCAP file %s: %w", pcapFile, err)
	}
	defer handle.Close()

	filterStr := fmt.Sprintf("udp port %d", udpPort)
	if err := handle.SetBPFFilter(filterStr); err != nil {
		return fmt.Errorf("failed to set BPF filter %q: %w", filterStr, err)
	}
	log.Printf("PCAP BPF filter set: %s", filterStr)

	if counters == nil {
		counters = NewPacketCounters()
	}

	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
	packetCount := 0
	startTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Printf("PCAP reader stopping due to context cancellation (processed %d packets)", packetCount)
			return ctx.Err()
		case packet := <-packetSource.Packets():
			if packet == nil {
				elapsed := time.Since(startTime)
				log.Printf("PCAP file reading complete: %d packets processed in %v", packetCount, elapsed)
				return nil
			}

			packetCount++

			udpLayer := packet.Layer(layers.LayerTypeUDP)
			if udpLayer == nil {
				continue
			}
			udp, ok := udpLayer.(*layers.UDP)
			if !ok {
				continue
			}
			payload := udp.Payload
			if len(payload) == 0 {
				continue
			}

			counters.AddPacket(len(payload))

			sample, err := DecodeSample(payload)
			if err != nil {
				counters.AddDecodeError()
				log.Printf("Error decoding PCAP packet %d: %v", packetCount, err)
				continue
			}
			if handler != nil {
				if err := handler.Submit(sample); err != nil {
					counters.AddDecodeError()
					log.Printf("Error submitting PCAP packet %d: %v", packetCount, err)
				}
			}
		}
	}
}
