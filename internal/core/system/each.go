package system

import (
	"time"

	"github.com/sago/secs/internal/core/ecs"
)

// Each1..Each4 build a System that runs fn over a fresh view every tick.
// The view is created on each Update, so storages registered after the
// system are picked up.

func Each1[A any](in Phase, r *ecs.Registry, fn func(time.Duration, ecs.Entity, *A)) Func {
	return Func{In: in, Fn: func(dt time.Duration) {
		ecs.NewView1[A](r).Each(func(e ecs.Entity, a *A) { fn(dt, e, a) })
	}}
}

func Each2[A, B any](in Phase, r *ecs.Registry, fn func(time.Duration, ecs.Entity, *A, *B)) Func {
	return Func{In: in, Fn: func(dt time.Duration) {
		ecs.NewView2[A, B](r).Each(func(e ecs.Entity, a *A, b *B) { fn(dt, e, a, b) })
	}}
}

func Each3[A, B, C any](in Phase, r *ecs.Registry, fn func(time.Duration, ecs.Entity, *A, *B, *C)) Func {
	return Func{In: in, Fn: func(dt time.Duration) {
		ecs.NewView3[A, B, C](r).Each(func(e ecs.Entity, a *A, b *B, c *C) { fn(dt, e, a, b, c) })
	}}
}

func Each4[A, B, C, D any](in Phase, r *ecs.Registry, fn func(time.Duration, ecs.Entity, *A, *B, *C, *D)) Func {
	return Func{In: in, Fn: func(dt time.Duration) {
		ecs.NewView4[A, B, C, D](r).Each(func(e ecs.Entity, a *A, b *B, c *C, d *D) { fn(dt, e, a, b, c, d) })
	}}
}
