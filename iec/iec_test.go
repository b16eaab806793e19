package iec_test

import "testing"

import "github.com/retrosys/c64core/iec"

func TestWiredOrPullsLineLowIfAnyDeviceAsserts(t *testing.T) {
	bus := iec.NewBus()
	c64 := iec.C64Connector{Bus: bus, Name: "c64"}
	drv := iec.DriveConnector{Bus: bus, Name: "drive"}

	c64.FromPA(0x00) // c64 releases everything
	drv.FromPB(1 << 1)  // drive pulls DATA low

	if !bus.State().Data {
		t.Fatalf("expected DATA asserted once the drive pulls it low")
	}
	if bus.State().Clock {
		t.Fatalf("expected CLOCK to remain released")
	}
}

func TestReleasingOneDeviceDoesNotReleaseAnotherSAssertion(t *testing.T) {
	bus := iec.NewBus()
	c64 := iec.C64Connector{Bus: bus, Name: "c64"}
	drv := iec.DriveConnector{Bus: bus, Name: "drive"}

	c64.FromPA(1 << 4) // c64 pulls CLOCK low
	drv.FromPB(0)
	if !bus.State().Clock {
		t.Fatalf("expected CLOCK asserted by the c64")
	}

	drv.FromPB(1 << 3) // drive also pulls CLOCK low
	c64.FromPA(0)       // c64 releases CLOCK
	if !bus.State().Clock {
		t.Fatalf("expected CLOCK to remain asserted: drive still holds it low")
	}
}

func TestATNVisibleToDriveConnector(t *testing.T) {
	bus := iec.NewBus()
	c64 := iec.C64Connector{Bus: bus, Name: "c64"}
	drv := iec.DriveConnector{Bus: bus, Name: "drive"}

	c64.FromPA(1 << 3) // c64 asserts ATN
	if !drv.ATNAsserted() {
		t.Fatalf("expected drive connector to observe asserted ATN")
	}
	if drv.ToPB()&(1<<7) == 0 {
		t.Fatalf("expected ATN IN bit set in VIA1 PB readback")
	}
}
