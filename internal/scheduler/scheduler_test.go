package scheduler

import "testing"

func TestScheduler_SpeedSwitch(t *testing.T) {
	s := NewScheduler()

	// nothing happens without a request
	s.CommitSpeedSwitch()
	if s.DoubleSpeed() {
		t.Fatalf("switched without a request")
	}

	s.WriteKEY1(0x01)
	if got := s.ReadKEY1(); got != 0x7F {
		t.Errorf("got %02X, want 7F", got)
	}
	s.CommitSpeedSwitch()
	if !s.DoubleSpeed() {
		t.Errorf("expected double speed")
	}
	if got := s.ReadKEY1(); got != 0xFE {
		t.Errorf("got %02X, want FE", got)
	}

	// request is cleared after commit
	s.CommitSpeedSwitch()
	if !s.DoubleSpeed() {
		t.Errorf("switched back without a request")
	}

	s.WriteKEY1(0x01)
	s.CommitSpeedSwitch()
	if s.DoubleSpeed() {
		t.Errorf("expected single speed")
	}
}

func TestScheduler_Split(t *testing.T) {
	tests := []struct {
		name   string
		double bool
		ticks  uint32
		dma    uint32
		cpu    uint32
		base   uint32
	}{
		{"single", false, 8, 0, 8, 8},
		{"single dma", false, 4, 16, 20, 20},
		{"double", true, 8, 0, 8, 4},
		{"double dma", true, 4, 8, 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			if tt.double {
				s.WriteKEY1(1)
				s.CommitSpeedSwitch()
			}
			cpu, base := s.Split(tt.ticks, tt.dma)
			if cpu != tt.cpu || base != tt.base {
				t.Errorf("got %d/%d, want %d/%d", cpu, base, tt.cpu, tt.base)
			}
			if s.Cycle() != uint64(tt.base) {
				t.Errorf("got cycle %d, want %d", s.Cycle(), tt.base)
			}
		})
	}
}
