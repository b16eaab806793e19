package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/retrosys/c64core/internal/snapshot"
)

type fakeCPU struct {
	A, X, Y uint8
	PC      uint16
}

type fakeRAM struct {
	Bytes [4]byte
}

func descriptors(cpu *fakeCPU, ram *fakeRAM) []snapshot.Descriptor {
	return []snapshot.Descriptor{
		{
			Component: "cpu",
			Fields: []snapshot.Field{
				{Name: "A", Value: &cpu.A, Policy: snapshot.ClearOnReset},
				{Name: "X", Value: &cpu.X, Policy: snapshot.ClearOnReset},
				{Name: "Y", Value: &cpu.Y, Policy: snapshot.ClearOnReset},
				{Name: "PC", Value: &cpu.PC, Policy: snapshot.ClearOnReset},
			},
		},
		{
			Component: "ram",
			Fields: []snapshot.Field{
				{Name: "Bytes", Value: &ram.Bytes, Policy: snapshot.KeepOnReset},
			},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cpu := &fakeCPU{A: 0x42, X: 1, Y: 2, PC: 0xc000}
	ram := &fakeRAM{Bytes: [4]byte{1, 2, 3, 4}}

	w := snapshot.NewWriter()
	for _, d := range descriptors(cpu, ram) {
		w.Add(d)
	}

	var buf bytes.Buffer
	if err := w.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	restoredCPU := &fakeCPU{}
	restoredRAM := &fakeRAM{}
	if err := snapshot.Decode(&buf, descriptors(restoredCPU, restoredRAM)); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if *restoredCPU != *cpu {
		t.Fatalf("restored CPU state mismatch: got %+v, want %+v", restoredCPU, cpu)
	}
	if restoredRAM.Bytes != ram.Bytes {
		t.Fatalf("restored RAM mismatch: got %v, want %v", restoredRAM.Bytes, ram.Bytes)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0, 0, 1})
	cpu := &fakeCPU{}
	ram := &fakeRAM{}
	err := snapshot.Decode(buf, descriptors(cpu, ram))
	if err != snapshot.ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestApplyResetClearsOnlyClearOnResetFields(t *testing.T) {
	cpu := &fakeCPU{A: 0x42, X: 1, Y: 2, PC: 0xc000}
	ram := &fakeRAM{Bytes: [4]byte{1, 2, 3, 4}}

	snapshot.ApplyReset(descriptors(cpu, ram))

	if *cpu != (fakeCPU{}) {
		t.Fatalf("expected CPU state cleared by reset, got %+v", cpu)
	}
	if ram.Bytes != ([4]byte{1, 2, 3, 4}) {
		t.Fatalf("expected RAM contents to survive reset, got %v", ram.Bytes)
	}
}
