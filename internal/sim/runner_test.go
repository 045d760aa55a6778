// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package sim_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/waystone/waystone/internal/engine"
	"github.com/waystone/waystone/internal/perception"
	"github.com/waystone/waystone/internal/script"
	"github.com/waystone/waystone/internal/sim"
	"github.com/waystone/waystone/internal/world"
)

func buildState() *engine.State {
	m := world.NewModel()
	Expect(m.RegisterLocations(map[string]world.Coord{
		"tavern": {X: 0, Y: 0},
		"square": {X: 0, Y: 1},
	})).To(Succeed())
	Expect(m.Initialize()).To(Succeed())

	alice, err := world.NewActor("a1", "Alice", "tavern")
	Expect(err).NotTo(HaveOccurred())
	bob, err := world.NewActor("a2", "Bob", "tavern")
	Expect(err).NotTo(HaveOccurred())
	Expect(m.RegisterActors(alice, bob)).To(Succeed())

	return engine.NewState(m, nil)
}

var _ = Describe("Runner", func() {
	var (
		state  *engine.State
		runner *sim.Runner
		ctx    context.Context
	)

	BeforeEach(func() {
		state = buildState()
		runner = sim.NewRunner(state, sim.WithRetry(3, time.Millisecond))
		ctx = context.Background()
	})

	Describe("Bind", func() {
		It("rejects unknown actors", func() {
			err := runner.Bind("Nobody", sim.StaticDecider(engine.Request{Action: engine.ActionRest}))
			Expect(world.ErrorCode(err)).To(Equal(world.CodeNotFound))
		})
	})

	Describe("RunTurn", func() {
		It("observes, decides, and applies", func() {
			Expect(runner.Bind("Alice", sim.DeciderFunc(
				func(_ context.Context, report perception.Report) (engine.Request, error) {
					Expect(report.Actor).To(Equal("Alice"))
					Expect(report.Others).To(ConsistOf("Bob"))
					return engine.Request{
						Action: engine.ActionStartDialogue,
						Args:   map[string]string{engine.ArgTarget: report.Others[0]},
					}, nil
				}))).To(Succeed())

			result, err := runner.RunTurn(ctx, "Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Feedback).To(ContainSubstring("Bob"))
			Expect(state.Model().Log().Len()).To(Equal(1))
		})

		It("fails when no decider is bound", func() {
			_, err := runner.RunTurn(ctx, "Alice")
			Expect(world.ErrorCode(err)).To(Equal(world.CodeNotFound))
		})

		It("retries a flaky decider", func() {
			calls := 0
			Expect(runner.Bind("Alice", sim.DeciderFunc(
				func(context.Context, perception.Report) (engine.Request, error) {
					calls++
					if calls < 3 {
						return engine.Request{}, errors.New("transient")
					}
					return engine.Request{Action: engine.ActionStaySilent}, nil
				}))).To(Succeed())

			result, err := runner.RunTurn(ctx, "Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(3))
			Expect(result.Request.Action).To(Equal(engine.ActionStaySilent))
		})

		It("re-decides after a rejected action", func() {
			calls := 0
			Expect(runner.Bind("Alice", sim.DeciderFunc(
				func(context.Context, perception.Report) (engine.Request, error) {
					calls++
					if calls == 1 {
						// Illegal while idle; the executor rejects it.
						return engine.Request{Action: engine.ActionContinueMove}, nil
					}
					return engine.Request{Action: engine.ActionRest}, nil
				}))).To(Succeed())

			result, err := runner.RunTurn(ctx, "Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(2))
			Expect(result.Request.Action).To(Equal(engine.ActionRest))
			// Only the accepted action reached the log.
			Expect(state.Model().Log().Len()).To(Equal(1))
		})

		It("gives up after exhausting attempts", func() {
			Expect(runner.Bind("Alice", sim.DeciderFunc(
				func(context.Context, perception.Report) (engine.Request, error) {
					return engine.Request{}, errors.New("permanently down")
				}))).To(Succeed())

			_, err := runner.RunTurn(ctx, "Alice")
			Expect(err).To(HaveOccurred())
			Expect(state.Model().Log().Len()).To(Equal(0))
		})

		It("reports actors woken by dialogue", func() {
			Expect(runner.Bind("Alice", sim.StaticDecider(engine.Request{
				Action: engine.ActionStartDialogue,
				Args:   map[string]string{engine.ArgTarget: "Bob"},
			}))).To(Succeed())
			Expect(runner.Bind("Bob", sim.StaticDecider(engine.Request{
				Action: engine.ActionRest,
			}))).To(Succeed())

			result, err := runner.RunTurn(ctx, "Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Woken).To(ConsistOf("Bob"))
		})
	})

	Describe("RunRound", func() {
		It("runs every actor once in order", func() {
			Expect(runner.Bind("Alice", sim.StaticDecider(engine.Request{Action: engine.ActionStaySilent}))).To(Succeed())
			Expect(runner.Bind("Bob", sim.StaticDecider(engine.Request{Action: engine.ActionRest}))).To(Succeed())

			results, err := runner.RunRound(ctx, []string{"Alice", "Bob"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Actor).To(Equal("Alice"))
			Expect(results[1].Actor).To(Equal("Bob"))
			Expect(state.Model().Log().Len()).To(Equal(2))
		})
	})

	Describe("RunScript", func() {
		It("replays a scenario end to end", func() {
			s, err := script.Parse(`
scenario "round-trip";
as "Alice" {
	start-move;
	continue-move direction="north";
	end-move;
}
`)
			Expect(err).NotTo(HaveOccurred())

			results, err := runner.RunScript(ctx, s)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))

			alice, err := state.Model().ActorByName("Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(alice.Location).To(Equal("square"))
			Expect(alice.Status).To(Equal(world.StatusIdle))
		})

		It("stops at the first failing step", func() {
			s, err := script.Parse(`
scenario "doomed";
as "Alice" {
	stay-silent;
	continue-dialogue;
}
`)
			Expect(err).NotTo(HaveOccurred())

			results, err := runner.RunScript(ctx, s)
			Expect(err).To(HaveOccurred())
			Expect(world.ErrorCode(err)).To(Equal(world.CodeRuleViolation))
			Expect(results).To(HaveLen(1))
		})
	})
})
