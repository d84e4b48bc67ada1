package systems

import "github.com/mlange-42/ark/ecs"

// BatchClassifier hashes each boid's (stress, speed) pair into an 8-bit key
// (4 bits stress, 4 bits speed) and groups boids by key for batched
// rendering. It is purely a classification cache with no physics effect.
type BatchClassifier struct {
	Enabled bool

	groups map[uint8][]ecs.Entity
	keys   []uint8 // keys with members, for stable iteration and cheap reset
}

// NewBatchClassifier creates an empty classifier.
func NewBatchClassifier() *BatchClassifier {
	return &BatchClassifier{groups: make(map[uint8][]ecs.Entity, 32)}
}

// ComputeBatchKey clamps both inputs to [0, 1] and packs them as
// stress<<4 | speed, each quantized to 4 bits.
func ComputeBatchKey(stress, speedRatio float32) uint8 {
	s := uint8(Clamp01(stress) * 15)
	v := uint8(Clamp01(speedRatio) * 15)
	return s<<4 | v
}

// Insert adds an entity to the group for the given key.
func (b *BatchClassifier) Insert(e ecs.Entity, key uint8) {
	bucket := b.groups[key]
	if len(bucket) == 0 {
		b.keys = append(b.keys, key)
	}
	b.groups[key] = append(bucket, e)
}

// Group returns the entities classified under key this tick.
func (b *BatchClassifier) Group(key uint8) []ecs.Entity {
	return b.groups[key]
}

// Keys returns the keys that currently have members.
func (b *BatchClassifier) Keys() []uint8 {
	return b.keys
}

// GroupCount returns the number of non-empty groups.
func (b *BatchClassifier) GroupCount() int {
	return len(b.keys)
}

// Reset empties all groups, keeping bucket capacity.
func (b *BatchClassifier) Reset() {
	for _, key := range b.keys {
		b.groups[key] = b.groups[key][:0]
	}
	b.keys = b.keys[:0]
}

// BatchColorHSL deterministically maps a batch key to a color: stress picks
// the hue (calm blue at 0 down to red at full stress), speed picks the
// brightness. Saturation is fixed.
func BatchColorHSL(key uint8) (h, s, v float32) {
	stress := float32(key>>4) / 15
	speed := float32(key&0x0f) / 15
	return 210 * (1 - stress), 0.8, 0.55 + 0.45*speed
}
