package traversing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/traverse/graphs"
	"github.com/sarchlab/traverse/hooking"
)

type countingHook struct {
	visits []int
	rounds []*RoundInfo
}

func (h *countingHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosNodeVisit:
		h.visits = append(h.visits, ctx.Item.(int))
	case HookPosRoundEnd:
		h.rounds = append(h.rounds, ctx.Detail.(*RoundInfo))
	}
}

var _ = Describe("Traverser", func() {
	var (
		g         *graphs.Graph
		traverser *Traverser[uint32]
	)

	BeforeEach(func() {
		//     0 -> 1 -> 3
		//     |         ^
		//     v         |
		//     2 --------+      4 (isolated)
		g = graphs.NewGraph(5)
		g.AddEdge(0, 1)
		g.AddEdge(0, 2)
		g.AddEdge(1, 3)
		g.AddEdge(2, 3)

		traverser = MakeBuilder[uint32]().
			WithGraph(g).
			Build("Traverser")
	})

	It("should visit in breadth-first order", func() {
		Expect(traverser.BFS(0)).To(Equal([]int{0, 1, 2, 3}))
	})

	It("should visit in depth-first order", func() {
		Expect(traverser.DFS(0)).To(Equal([]int{0, 1, 3, 2}))
	})

	It("should only reach nodes downstream of the source", func() {
		Expect(traverser.BFS(1)).To(Equal([]int{1, 3}))
		Expect(traverser.BFS(4)).To(Equal([]int{4}))
	})

	It("should not carry marks between rounds", func() {
		Expect(traverser.BFS(0)).To(HaveLen(4))
		Expect(traverser.BFS(0)).To(HaveLen(4))
		Expect(traverser.DFS(1)).To(Equal([]int{1, 3}))
	})

	It("should handle cycles", func() {
		g.AddEdge(3, 0)

		Expect(traverser.BFS(0)).To(Equal([]int{0, 1, 2, 3}))
	})

	It("should panic on an out-of-range source", func() {
		Expect(func() { traverser.BFS(5) }).To(Panic())
		Expect(func() { traverser.DFS(-1) }).To(Panic())
	})

	It("should invoke hooks at node visits and round boundaries", func() {
		hook := &countingHook{}
		traverser.AcceptHook(hook)

		traverser.BFS(0)

		Expect(hook.visits).To(Equal([]int{0, 1, 2, 3}))
		Expect(hook.rounds).To(HaveLen(1))
		Expect(hook.rounds[0].Algorithm).To(Equal("BFS"))
		Expect(hook.rounds[0].Source).To(Equal(0))
		Expect(hook.rounds[0].NodesVisited).To(Equal(4))
		Expect(hook.rounds[0].FrontierPeak).To(Equal(2))
	})

	It("should refuse to build without a graph", func() {
		Expect(func() {
			MakeBuilder[uint32]().Build("Traverser")
		}).To(Panic())
		Expect(func() {
			MakeBuilder[uint32]().WithGraph(g).Build("")
		}).To(Panic())
	})
})

var _ = Describe("Traverser ConnectedComponents", func() {
	It("should label undirected components", func() {
		g := graphs.NewGraph(6)
		g.AddBiEdge(0, 1)
		g.AddBiEdge(1, 2)
		g.AddBiEdge(3, 4)

		traverser := MakeBuilder[uint32]().
			WithGraph(g).
			Build("Components")

		Expect(traverser.ConnectedComponents()).
			To(Equal([]int{0, 0, 0, 1, 1, 2}))
	})

	It("should label an edgeless graph with one component per node", func() {
		g := graphs.NewGraph(3)

		traverser := MakeBuilder[uint32]().
			WithGraph(g).
			Build("Components")

		Expect(traverser.ConnectedComponents()).To(Equal([]int{0, 1, 2}))
	})

	It("should stay correct over many rounds on a narrow tracker", func() {
		g := graphs.NewGraph(4)
		g.AddBiEdge(0, 1)
		g.AddBiEdge(2, 3)

		traverser := MakeBuilder[uint8]().
			WithGraph(g).
			Build("Components")

		// Far more rounds than a uint8 generation counter can count.
		for round := 0; round < 600; round++ {
			Expect(traverser.ConnectedComponents()).
				To(Equal([]int{0, 0, 1, 1}))
		}
	})
})
