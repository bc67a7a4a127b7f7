package domain

// DropClock decides when gravity is due. The host owns the time source and
// passes milliseconds; the clock only remembers the last drop.
type DropClock struct {
    last int64
}

// Reset rearms the clock at now without firing.
func (c *DropClock) Reset(nowMillis int64) {
    c.last = nowMillis
}

// Due reports whether more than DropInterval(level) has passed since the last
// drop. A true result counts as a drop and rearms the clock.
func (c *DropClock) Due(nowMillis int64, level int) bool {
    if nowMillis-c.last <= DropInterval(level).Milliseconds() {
        return false
    }
    c.last = nowMillis
    return true
}

