package metabolism

import "testing"

func TestNewClampsInitialEnergy(t *testing.T) {
	m := New(500, 100)
	if m.Energy != 100 {
		t.Errorf("Energy = %v; want clamped to 100", m.Energy)
	}
	if m.Health != MaxHealth {
		t.Errorf("Health = %v; want %v", m.Health, MaxHealth)
	}
}

func TestIsAlive(t *testing.T) {
	m := New(10, 100)
	if !m.IsAlive() {
		t.Fatal("freshly created metabolism should be alive")
	}
	m.Health = 0
	if m.IsAlive() {
		t.Fatal("zero health should not be alive")
	}
}

func TestConsumeEnergySufficient(t *testing.T) {
	m := New(50, 100)
	ok := m.ConsumeEnergy(20)
	if !ok {
		t.Fatal("ConsumeEnergy should succeed when affordable")
	}
	if m.Energy != 30 {
		t.Errorf("Energy = %v; want 30", m.Energy)
	}
}

func TestConsumeEnergyInsufficient(t *testing.T) {
	m := New(10, 100)
	ok := m.ConsumeEnergy(50)
	if ok {
		t.Fatal("ConsumeEnergy should fail when not affordable")
	}
	if m.Energy != 0 {
		t.Errorf("Energy = %v; want 0 after failed consume", m.Energy)
	}
}

func TestGainEnergyClampsToMax(t *testing.T) {
	m := New(90, 100)
	m.GainEnergy(50)
	if m.Energy != 100 {
		t.Errorf("Energy = %v; want clamped to 100", m.Energy)
	}
}

func TestTakeDamageClampsAtZero(t *testing.T) {
	m := New(10, 100)
	m.TakeDamage(1000)
	if m.Health != 0 {
		t.Errorf("Health = %v; want 0", m.Health)
	}
}

func TestHealClampsAtMax(t *testing.T) {
	m := New(10, 100)
	m.TakeDamage(50)
	m.Heal(1000)
	if m.Health != MaxHealth {
		t.Errorf("Health = %v; want %v", m.Health, MaxHealth)
	}
}

func TestPassiveHealConsumesEnergy(t *testing.T) {
	m := New(50, 100)
	m.TakeDamage(10)

	healed := m.PassiveHeal(5, 3)
	if !healed {
		t.Fatal("PassiveHeal should have healed")
	}
	if m.Health != 95 {
		t.Errorf("Health = %v; want 95", m.Health)
	}
	if m.Energy != 47 {
		t.Errorf("Energy = %v; want 47", m.Energy)
	}
}

func TestPassiveHealNoOpWhenFullHealth(t *testing.T) {
	m := New(50, 100)
	healed := m.PassiveHeal(5, 3)
	if healed {
		t.Fatal("PassiveHeal should be a no-op at full health")
	}
	if m.Energy != 50 {
		t.Errorf("Energy = %v; want unchanged 50", m.Energy)
	}
}

func TestPassiveHealNoOpWhenUnaffordable(t *testing.T) {
	m := New(2, 100)
	m.TakeDamage(10)
	healed := m.PassiveHeal(5, 3)
	if healed {
		t.Fatal("PassiveHeal should be a no-op when energy cost unaffordable")
	}
	if m.Health != 90 {
		t.Errorf("Health = %v; want unchanged 90", m.Health)
	}
}

func TestEnergyRatio(t *testing.T) {
	m := New(25, 100)
	if got := m.EnergyRatio(); got != 0.25 {
		t.Errorf("EnergyRatio = %v; want 0.25", got)
	}
}

func TestHealthRatio(t *testing.T) {
	m := New(50, 100)
	m.TakeDamage(25)
	if got := m.HealthRatio(); got != 0.75 {
		t.Errorf("HealthRatio = %v; want 0.75", got)
	}
}

func TestCanAfford(t *testing.T) {
	m := New(10, 100)
	if !m.CanAfford(10) {
		t.Error("CanAfford(10) should be true when energy == 10")
	}
	if m.CanAfford(11) {
		t.Error("CanAfford(11) should be false when energy == 10")
	}
}
