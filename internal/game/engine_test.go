package game

import (
	"math"
	"testing"

	"github.com/Garsondee/arena-league/internal/geom"
)

// testStats returns a middle-of-the-road fighter.
func testStats(name string) Stats {
	return Stats{
		Name:        name,
		HP:          3,
		Speed:       0.5,
		MeleeDamage: 1,
		ThrowDamage: 1,
		Cooldown:    60,
		Aggression:  200,
		StrafeRate:  0.05,
		Accuracy:    0.8,
		MeleeBias:   0.5,
	}
}

func TestSoftPush_SplitsOverlapEvenly(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(400, 400),
		WithAgent(testStats("A"), 0, 100, 100),
		WithAgent(testStats("B"), 1, 110, 100),
	)
	a, b := ts.Agents[0], ts.Agents[1]

	ts.Engine.resolveCollisions(a, ts.Agents)

	if d := a.pos.Dist(b.pos); d < a.radius+b.radius-1e-9 {
		t.Fatalf("agents still overlap: distance %.3f", d)
	}
	if math.Abs(a.pos.X-80) > 1e-9 || math.Abs(b.pos.X-130) > 1e-9 {
		t.Fatalf("expected an even 20/20 split, got A.x=%.3f B.x=%.3f", a.pos.X, b.pos.X)
	}
}

func TestSoftPush_CoincidentAgentsSeparate(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(400, 400),
		WithAgent(testStats("A"), 0, 200, 200),
		WithAgent(testStats("B"), 1, 200, 200),
	)
	a, b := ts.Agents[0], ts.Agents[1]
	ts.Engine.resolveCollisions(a, ts.Agents)
	if d := a.pos.Dist(b.pos); d < 50-1e-9 {
		t.Fatalf("coincident agents should be pushed apart, distance %.3f", d)
	}
	if math.IsNaN(a.pos.X) || math.IsNaN(b.pos.X) {
		t.Fatal("NaN position after separating coincident agents")
	}
}

func TestObstaclePush_CancelsInwardVelocity(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(400, 400),
		WithCircle(240, 200, 20),
		WithAgent(testStats("A"), 0, 200, 200),
	)
	a := ts.Agents[0]
	a.vel = geom.V(3, 1)
	ts.Engine.resolveCollisions(a, ts.Agents)

	if d := a.pos.Dist(geom.V(240, 200)); d < 45-1e-9 {
		t.Fatalf("agent still inside pillar: centre distance %.3f", d)
	}
	if a.vel.X > 1e-9 {
		t.Errorf("velocity into the pillar should be cancelled, got %v", a.vel)
	}
	if math.Abs(a.vel.Y-1) > 1e-9 {
		t.Errorf("tangential velocity should survive, got %v", a.vel)
	}
}

func TestCollision_ClampsToArena(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(400, 400),
		WithAgent(testStats("A"), 0, 410, -5),
	)
	a := ts.Agents[0]
	ts.Engine.resolveCollisions(a, ts.Agents)
	if a.pos.X != 400 || a.pos.Y != 0 {
		t.Fatalf("expected clamp to (400,0), got %v", a.pos)
	}
}

func TestMelee_LethalHitRecordsOneKill(t *testing.T) {
	attacker := testStats("Cartman")
	attacker.MeleeDamage = 3
	victim := testStats("Sonic")
	victim.HP = 3
	ts := NewTestSim(
		WithAgent(attacker, 0, 100, 100),
		WithAgent(victim, 1, 150, 100),
	)
	a, v := ts.Agents[0], ts.Agents[1]
	a.target = v

	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)

	if v.alive {
		t.Fatalf("victim should be dead, hp=%d", v.hp)
	}
	if ts.Kills.Len() != 1 {
		t.Fatalf("expected exactly one kill event, got %d", ts.Kills.Len())
	}
	if got := ts.Kills.Events()[0].String(); got != "Cartman STABBED Sonic" {
		t.Errorf("kill feed line = %q", got)
	}
	if a.swingTimer != swingTicks || a.cooldown != meleeCooldownTicks {
		t.Errorf("swing=%d cooldown=%d after melee", a.swingTimer, a.cooldown)
	}

	// Further attacks on a corpse never add kills.
	a.cooldown = 0
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if ts.Kills.Len() != 1 {
		t.Fatalf("dead victim produced another kill event")
	}
	if v.takeDamage(5) {
		t.Fatal("takeDamage on a dead agent must not report a kill")
	}
}

func TestMelee_RespectsCooldown(t *testing.T) {
	ts := NewTestSim(
		WithAgent(testStats("A"), 0, 100, 100),
		WithAgent(testStats("B"), 1, 150, 100),
	)
	a, b := ts.Agents[0], ts.Agents[1]
	a.target = b
	a.cooldown = 5
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if b.hp != b.maxHP {
		t.Fatalf("melee landed during cooldown, hp=%d", b.hp)
	}
}

func TestThrow_MeleeBiasGatesThrows(t *testing.T) {
	thrower := testStats("Flash")
	thrower.MeleeBias = 0
	hugger := testStats("Homer")
	hugger.MeleeBias = 1

	ts := NewTestSim(
		WithAgent(thrower, 0, 100, 100),
		WithAgent(hugger, 0, 100, 400),
		WithAgent(testStats("Target"), 1, 400, 250),
	)
	a, h, tgt := ts.Agents[0], ts.Agents[1], ts.Agents[2]
	a.target = tgt
	h.target = tgt

	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	ts.Engine.updateCombat(h, ts.Agents, ts.Kills)

	if a.weapon != WeaponFlying {
		t.Errorf("meleeBias 0 should throw, weapon=%s", a.weapon)
	}
	if a.cooldown != thrower.Cooldown {
		t.Errorf("cooldown=%d, want %d", a.cooldown, thrower.Cooldown)
	}
	if a.swingTimer != 0 {
		t.Errorf("throw started a swing animation (%d)", a.swingTimer)
	}
	if h.weapon != WeaponInHand {
		t.Errorf("meleeBias 1 should never throw, weapon=%s", h.weapon)
	}
}

func TestThrow_NeedsLineOfSight(t *testing.T) {
	thrower := testStats("Flash")
	thrower.MeleeBias = 0
	ts := NewTestSim(
		WithRect(200, 0, 40, 400),
		WithAgent(thrower, 0, 100, 200),
		WithAgent(testStats("Target"), 1, 400, 200),
	)
	a := ts.Agents[0]
	a.target = ts.Agents[1]
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if a.weapon != WeaponInHand {
		t.Fatal("weapon thrown through a wall")
	}
}

func TestHeading_EasesAlongShortestArc(t *testing.T) {
	ts := NewTestSim(WithAgent(testStats("A"), 0, 100, 100))
	a := ts.Agents[0]

	a.heading = 0
	a.vel = geom.V(0, 2)
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if want := math.Pi / 2 * headingSmoothing; math.Abs(a.heading-want) > 1e-9 {
		t.Fatalf("heading=%.4f want %.4f", a.heading, want)
	}

	// Across the +-pi seam the heading must keep increasing, not swing back.
	a.heading = 3.0
	a.vel = geom.FromAngle(-3.0).Scale(2)
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if a.heading <= 3.0 && a.heading > 0 {
		t.Fatalf("heading took the long way round: %.4f", a.heading)
	}

	// Too slow to turn.
	a.heading = 1
	a.vel = geom.V(0.05, 0)
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if a.heading != 1 {
		t.Fatalf("heading changed below the speed threshold: %.4f", a.heading)
	}
}

func TestProjectile_StopsBeforeWall(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(400, 400),
		WithRect(200, 0, 20, 400),
		WithAgent(testStats("A"), 0, 50, 350),
	)
	a := ts.Agents[0]
	a.weapon = WeaponFlying
	a.weaponPos = geom.V(100, 200)
	a.weaponDir = geom.V(1, 0)

	landedAt := -1
	for i := 1; i <= 20; i++ {
		ts.Engine.updateWeapon(a, ts.Agents, ts.Kills)
		if a.weapon != WeaponFlying {
			landedAt = i
			break
		}
	}
	if landedAt != 10 {
		t.Fatalf("weapon landed on step %d, want 10", landedAt)
	}
	if a.weapon != WeaponGrounded {
		t.Fatalf("weapon state %s, want grounded", a.weapon)
	}
	if math.Abs(a.weaponPos.X-190) > 1e-9 {
		t.Fatalf("weapon should revert one step to x=190, got %.3f", a.weaponPos.X)
	}
	effects := ts.Engine.Effects()
	if len(effects) != 1 || effects[0].Kind != EffectImpact {
		t.Fatalf("expected one impact effect, got %v", effects)
	}
	if !ts.SimLog.HasEntry("weapon", "impact", "rect") {
		t.Error("missing weapon impact log entry")
	}
}

func TestProjectile_LeavesArenaAndLandsInside(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(400, 400),
		WithAgent(testStats("A"), 0, 50, 50),
	)
	a := ts.Agents[0]
	a.weapon = WeaponFlying
	a.weaponPos = geom.V(380, 200)
	a.weaponDir = geom.V(1, 0)

	for i := 0; i < 5 && a.weapon == WeaponFlying; i++ {
		ts.Engine.updateWeapon(a, ts.Agents, ts.Kills)
	}
	if a.weapon != WeaponGrounded {
		t.Fatalf("weapon still %s", a.weapon)
	}
	if a.weaponPos.X != 380 || a.weaponPos.Y != 200 {
		t.Fatalf("weapon should land clamped at (380,200), got %v", a.weaponPos)
	}
}

func TestProjectile_SnipesFirstEnemy(t *testing.T) {
	thrower := testStats("Flash")
	thrower.ThrowDamage = 2
	victim := testStats("Homer")
	victim.HP = 2
	ts := NewTestSim(
		WithArenaSize(600, 400),
		WithAgent(thrower, 0, 50, 50),
		WithAgent(testStats("Buddy"), 0, 230, 200), // same team, in the path
		WithAgent(victim, 1, 300, 200),
	)
	a, buddy, v := ts.Agents[0], ts.Agents[1], ts.Agents[2]
	a.weapon = WeaponFlying
	a.weaponPos = geom.V(150, 200)
	a.weaponDir = geom.V(1, 0)

	for i := 0; i < 30 && a.weapon == WeaponFlying; i++ {
		ts.Engine.updateWeapon(a, ts.Agents, ts.Kills)
	}
	if buddy.hp != buddy.maxHP {
		t.Errorf("friendly took damage: hp=%d", buddy.hp)
	}
	if v.alive {
		t.Fatal("victim should be dead")
	}
	if ts.Kills.Len() != 1 || ts.Kills.Events()[0].Method != KillSniped {
		t.Fatalf("kill feed = %v", ts.Kills.Events())
	}
	if got := ts.Kills.Events()[0].String(); got != "Flash SNIPED Homer" {
		t.Errorf("kill feed line = %q", got)
	}
	// The hitbox reaches the hurtbox once its front edge is inside radius.
	if math.Abs(a.weaponPos.X-260) > 1e-9 {
		t.Errorf("weapon should land where it hit, got %v", a.weaponPos)
	}
}

func TestWeapon_PickupNeedsLiveOwnerInRange(t *testing.T) {
	ts := NewTestSim(WithAgent(testStats("A"), 0, 130, 100))
	a := ts.Agents[0]
	a.weapon = WeaponGrounded
	a.weaponPos = geom.V(100, 100)

	a.alive = false
	ts.Engine.updateWeapon(a, ts.Agents, ts.Kills)
	if a.weapon != WeaponGrounded {
		t.Fatal("dead owner picked up the weapon")
	}

	a.alive = true
	a.pos = geom.V(200, 100)
	ts.Engine.updateWeapon(a, ts.Agents, ts.Kills)
	if a.weapon != WeaponGrounded {
		t.Fatal("picked up from out of range")
	}

	a.pos = geom.V(130, 100)
	ts.Engine.updateWeapon(a, ts.Agents, ts.Kills)
	if a.weapon != WeaponInHand {
		t.Fatalf("weapon should be back in hand, got %s", a.weapon)
	}
}

func TestWeapon_FlightContinuesAfterOwnerDies(t *testing.T) {
	ts := NewTestSim(WithAgent(testStats("A"), 0, 100, 100))
	a := ts.Agents[0]
	a.alive = false
	a.weapon = WeaponFlying
	a.weaponPos = geom.V(300, 300)
	a.weaponDir = geom.V(0, 1)

	ts.RunTicks(1)
	if a.weaponPos.Y != 310 {
		t.Fatalf("weapon should keep flying, at %v", a.weaponPos)
	}
	if a.pos != geom.V(100, 100) {
		t.Fatal("dead agent moved")
	}
}

func TestStuck_ArmsEscapeAndClearsWithHysteresis(t *testing.T) {
	ts := NewTestSim(WithAgent(testStats("A"), 0, 300, 300))
	a := ts.Agents[0]
	e := ts.Engine

	for i := 0; i < 9; i++ {
		e.updateStuck(a)
	}
	if a.stuck.escapeTimer != escapeTicks {
		t.Fatalf("escape timer=%d after 9 still ticks, want %d", a.stuck.escapeTimer, escapeTicks)
	}
	if n := ts.SimLog.CountCategory("move", "stuck"); n != 1 {
		t.Fatalf("stuck logged %d times, want once", n)
	}

	// Escaping halves the stuck accumulation rate.
	before := a.stuck.timer
	e.updateStuck(a)
	if a.stuck.timer-before != 0.5 {
		t.Fatalf("stuck increment while escaping = %.2f", a.stuck.timer-before)
	}

	// Moving a little does not clear the timer.
	a.pos = a.pos.Add(geom.V(20, 0))
	e.updateStuck(a)
	if a.stuck.timer == 0 {
		t.Fatal("timer cleared within the hysteresis radius")
	}

	// Leaving the stuck origin clears it.
	a.pos = geom.V(360, 300)
	e.updateStuck(a)
	if a.stuck.timer != 0 || a.stuck.reported {
		t.Fatalf("timer=%.1f reported=%v after leaving origin", a.stuck.timer, a.stuck.reported)
	}
	if !ts.SimLog.HasEntry("move", "unstuck", "") {
		t.Error("missing unstuck log entry")
	}
}

func TestTargetAcquisition_NearestVisible(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(900, 900),
		WithRect(200, 0, 40, 400),
		WithAgent(testStats("A"), 0, 100, 200),
		WithAgent(testStats("Hidden"), 1, 400, 200),  // 300 away behind the wall
		WithAgent(testStats("Visible"), 1, 100, 700), // 500 away in the open
		WithAgent(testStats("TooFar"), 1, 890, 890),  // beyond sensor range
		WithAgent(testStats("Friend"), 0, 120, 260),
	)
	a := ts.Agents[0]
	ts.Engine.acquireTarget(a, ts.Agents)
	if a.target == nil || a.target.name != "Visible" {
		t.Fatalf("target = %v, want Visible", a.target)
	}
	if a.scanTimer < rescanMin || a.scanTimer >= rescanMin+rescanJitter {
		t.Errorf("rescan timer %d out of range", a.scanTimer)
	}

	ts.Agents[2].alive = false
	ts.Engine.acquireTarget(a, ts.Agents)
	if a.target != nil {
		t.Fatalf("dead target should be forgotten, got %s", a.target.name)
	}
	if !ts.SimLog.HasEntry("target", "lost", "Visible") {
		t.Error("missing target lost entry")
	}
}

func TestFanSweep_PrefersBiasSide(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(400, 600),
		WithRect(130, 200, 20, 200),
		WithAgent(testStats("A"), 0, 100, 300),
	)
	a := ts.Agents[0]
	local := ts.Engine.arena.Obstacles.All()

	dir := ts.Engine.fanSweep(a, geom.V(1, 0), local)
	if math.Abs(dir.X) > 1e-9 || math.Abs(dir.Y-1) > 1e-9 {
		t.Fatalf("bias +1 should pick +90 deg, got %v", dir)
	}
	if a.avoidBias != 1 {
		t.Fatalf("avoid bias = %v", a.avoidBias)
	}

	a.avoidBias = -1
	dir = ts.Engine.fanSweep(a, geom.V(1, 0), local)
	if math.Abs(dir.X) > 1e-9 || math.Abs(dir.Y+1) > 1e-9 {
		t.Fatalf("bias -1 should pick -90 deg, got %v", dir)
	}
}

func TestSlide_FallsBackToFreeAxis(t *testing.T) {
	obs := []geom.Obstacle{geom.Rect{X: 120, Y: 0, W: 50, H: 400}}
	desired := geom.V(1, 1).Normalize()
	got := slide(geom.V(100, 100), desired, obs)
	if got.X != 0 || got.Y != 1 {
		t.Fatalf("expected slide along +Y, got %v", got)
	}

	free := slide(geom.V(100, 100), desired, nil)
	if free != desired {
		t.Fatalf("unblocked probe should keep direction, got %v", free)
	}
}

func TestObstacleCache_RebuildsAfterMoving(t *testing.T) {
	set := NewObstacleSet([]geom.Obstacle{
		geom.Circle{Center: geom.V(1000, 1000), Radius: 10},
		geom.Rect{X: 90, Y: 90, W: 20, H: 20},
		geom.Circle{Center: geom.V(50, 50), Radius: 10},
	})
	var c obstacleCache
	if !c.refresh(set, geom.V(100, 100)) {
		t.Fatal("first refresh must build")
	}
	if len(c.local) != 2 {
		t.Fatalf("local subset has %d obstacles, want 2", len(c.local))
	}
	if c.local[0].Kind() != geom.KindRect || c.local[1].Kind() != geom.KindCircle {
		t.Fatal("query results must keep configuration order")
	}
	if c.refresh(set, geom.V(150, 100)) {
		t.Fatal("moving 50 should not rebuild")
	}
	if !c.refresh(set, geom.V(250, 100)) {
		t.Fatal("moving 150 should rebuild")
	}
}

func TestMatch_WinnerAndAliveCount(t *testing.T) {
	ts := NewTestSim(
		WithAgent(testStats("A"), 0, 100, 100),
		WithAgent(testStats("B"), 1, 500, 500),
		WithAgent(testStats("C"), 1, 600, 600),
	)
	m := NewMatch(ts.Engine, ts.Agents, []string{"FAT", "FAST"})
	if _, ok := m.Winner(); ok {
		t.Fatal("no winner while both teams live")
	}
	ts.Agents[0].alive = false
	w, ok := m.Winner()
	if !ok || w != 1 {
		t.Fatalf("winner = %v,%v", w, ok)
	}
	if m.AliveCount(1) != 2 || m.AliveCount(0) != 0 {
		t.Fatalf("alive counts %d/%d", m.AliveCount(0), m.AliveCount(1))
	}
	if m.Title(w) != "FAST" {
		t.Errorf("title = %s", m.Title(w))
	}
	tick := m.Tick()
	m.Step()
	if m.Tick() != tick {
		t.Error("a decided match should not advance")
	}
}

func TestStuck_NudgesOncePerArming(t *testing.T) {
	ts := NewTestSim(WithArenaSize(600, 600), WithAgent(testStats("A"), 0, 300, 300))
	a := ts.Agents[0]
	a.stuck.timer = 85
	a.stuck.origin, a.stuck.hasOrigin = a.pos, true

	var speeds []float64
	for i := 0; i < 5; i++ {
		a.lastPos = a.pos
		ts.Engine.updateStuck(a)
		speeds = append(speeds, a.vel.Len())
	}
	for i, s := range speeds {
		if math.Abs(s-3) > 1e-9 {
			t.Fatalf("speed after call %d = %.2f, want 3 (all: %v)", i+1, s, speeds)
		}
	}
	if a.stuck.escapeTimer != escapeTicksSevere {
		t.Errorf("escape timer=%d, want %d", a.stuck.escapeTimer, escapeTicksSevere)
	}
	if n := ts.SimLog.CountCategory("move", "escape"); n != 1 {
		t.Fatalf("escape armed %d times, want once", n)
	}
	if e, _ := ts.SimLog.LastOf("move", "escape"); e.NumVal != 86 {
		t.Errorf("escape logged at stuck level %.1f, want 86", e.NumVal)
	}
}

func TestEscapeDirection_OutwardFromNearestSurface(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(900, 900),
		WithRect(200, 0, 40, 400),
		WithCircle(700, 700, 30),
		WithAgent(testStats("A"), 0, 100, 200),
	)
	twin := NewTestSim(WithArenaSize(900, 900))
	a := ts.Agents[0]

	// The wall face is 100 away; still the nearest surface.
	if dir := ts.Engine.escapeDirection(a); dir != geom.V(-1, 0) {
		t.Fatalf("escape dir = %v, want (-1,0)", dir)
	}

	open := NewTestSim(WithAgent(testStats("B"), 0, 300, 300))
	if dir := open.Engine.escapeDirection(open.Agents[0]); dir != geom.V(1, 0) {
		t.Fatalf("escape dir with no obstacles = %v, want (1,0)", dir)
	}

	if ts.Engine.rng.Float64() != twin.Engine.rng.Float64() {
		t.Fatal("computing an escape direction consumed a random draw")
	}
}

func TestTargetAcquisition_ScanDropsTargetBehindWall(t *testing.T) {
	victim := testStats("B")
	victim.HP = 100
	ts := NewTestSim(
		WithArenaSize(300, 600),
		WithRect(126, 0, 4, 600),
		WithAgent(testStats("A"), 0, 98, 300),
		WithAgent(victim, 1, 162, 300),
	)
	a, v := ts.Agents[0], ts.Agents[1]
	a.target = v

	ts.RunTicks(60)

	if a.target != nil {
		t.Fatalf("target behind a wall kept after scanning: %s", a.target.name)
	}
	if v.hp != v.maxHP {
		t.Fatalf("victim hit through the wall, hp=%d/%d", v.hp, v.maxHP)
	}
	lost := false
	for _, e := range ts.SimLog.FilterAgent("A") {
		if e.Category == "target" && e.Key == "lost" && e.Value == "B" {
			lost = true
		}
	}
	if !lost {
		t.Error("A never logged losing B")
	}
}

func TestEngage_ApproachesBeyondAggression(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(900, 900),
		WithAgent(testStats("A"), 0, 300, 300),
		WithAgent(testStats("B"), 1, 525, 300), // aggression 200 + 25
	)
	a, b := ts.Agents[0], ts.Agents[1]
	e := ts.Engine

	if got := e.engage(a, b, nil); got != b.pos {
		t.Fatalf("armed agent beyond aggression should approach, got %v", got)
	}

	// Disarmed against an armed enemy still closes in when beyond aggression.
	a.weapon = WeaponGrounded
	if got := e.engage(a, b, nil); got != b.pos {
		t.Fatalf("disarmed agent beyond aggression should approach, got %v", got)
	}

	// Inside aggression the disarmed agent strafes and backs off toward 600.
	b.pos = geom.V(450, 300)
	got := e.engage(a, b, nil)
	if got == b.pos {
		t.Fatal("agent inside aggression should strafe, not approach")
	}
	if got.X >= a.pos.X {
		t.Errorf("disarmed strafe should drift away from the enemy, got %v", got)
	}
}

func TestCombat_RollOrder(t *testing.T) {
	newPair := func() *TestSim {
		return NewTestSim(
			WithAgent(testStats("A"), 0, 100, 100),
			WithAgent(testStats("B"), 1, 150, 100),
		)
	}
	ref := newPair()
	ref.Engine.rng.Float64()
	want := ref.Engine.rng.Float64()

	// In melee range but cooling down: the throw roll is still drawn.
	ts := newPair()
	a := ts.Agents[0]
	a.target = ts.Agents[1]
	a.cooldown = 5
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if got := ts.Engine.rng.Float64(); got != want {
		t.Fatal("melee-range tick on cooldown skipped the throw roll")
	}

	// Disarmed: drawn as well.
	ts = newPair()
	a = ts.Agents[0]
	a.target = ts.Agents[1]
	a.weapon = WeaponGrounded
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	if got := ts.Engine.rng.Float64(); got != want {
		t.Fatal("disarmed tick skipped the throw roll")
	}

	// A landed melee draws nothing.
	ts = newPair()
	a = ts.Agents[0]
	a.target = ts.Agents[1]
	ts.Engine.updateCombat(a, ts.Agents, ts.Kills)
	fresh := newPair()
	if ts.Engine.rng.Float64() != fresh.Engine.rng.Float64() {
		t.Fatal("melee consumed a random draw")
	}
}
