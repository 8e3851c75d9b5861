package visiting

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tracker", func() {
	var tracker *Tracker[uint32]

	BeforeEach(func() {
		tracker = NewTracker[uint32](5)
	})

	It("should start with nothing visited", func() {
		Expect(tracker.Cap()).To(Equal(5))
		for i := 0; i < 5; i++ {
			Expect(tracker.IsVisited(i)).To(BeFalse())
		}
	})

	It("should mark a single index", func() {
		tracker.SetVisited(2)

		for i := 0; i < 5; i++ {
			Expect(tracker.IsVisited(i)).To(Equal(i == 2))
		}
	})

	It("should mark idempotently", func() {
		tracker.SetVisited(2)
		tracker.SetVisited(2)

		for i := 0; i < 5; i++ {
			Expect(tracker.IsVisited(i)).To(Equal(i == 2))
		}
	})

	It("should return the pre-mark state from SetAndGetVisited", func() {
		Expect(tracker.SetAndGetVisited(1)).To(BeFalse())
		Expect(tracker.IsVisited(1)).To(BeTrue())
		Expect(tracker.SetAndGetVisited(1)).To(BeTrue())
		Expect(tracker.IsVisited(1)).To(BeTrue())
	})

	It("should forget all marks on Clear", func() {
		tracker.SetVisited(1)
		tracker.SetVisited(3)
		Expect(tracker.IsVisited(0)).To(BeFalse())
		Expect(tracker.IsVisited(1)).To(BeTrue())
		Expect(tracker.IsVisited(2)).To(BeFalse())
		Expect(tracker.IsVisited(3)).To(BeTrue())
		Expect(tracker.IsVisited(4)).To(BeFalse())

		tracker.Clear()

		for i := 0; i < 5; i++ {
			Expect(tracker.IsVisited(i)).To(BeFalse())
		}

		tracker.SetVisited(1)
		for i := 0; i < 5; i++ {
			Expect(tracker.IsVisited(i)).To(Equal(i == 1))
		}
	})

	It("should behave the same through the racing entry points", func() {
		tracker.SetVisitedRacing(4)
		Expect(tracker.IsVisited(4)).To(BeTrue())

		Expect(tracker.SetAndGetVisitedRacing(0)).To(BeFalse())
		Expect(tracker.SetAndGetVisitedRacing(0)).To(BeTrue())
	})

	It("should allow concurrent racing marks on disjoint partitions", func() {
		big := NewTracker[uint32](1000)

		done := make(chan bool)
		for p := 0; p < 4; p++ {
			go func(part int) {
				defer GinkgoRecover()

				for i := part * 250; i < (part+1)*250; i++ {
					Expect(big.SetAndGetVisitedRacing(i)).To(BeFalse())
				}
				done <- true
			}(p)
		}
		for p := 0; p < 4; p++ {
			<-done
		}

		for i := 0; i < 1000; i++ {
			Expect(big.IsVisited(i)).To(BeTrue())
		}
	})

	It("should grow without disturbing marks", func() {
		tracker.SetVisited(4)

		tracker.Grow(8)

		Expect(tracker.Cap()).To(Equal(8))
		Expect(tracker.IsVisited(4)).To(BeTrue())
		for i := 5; i < 8; i++ {
			Expect(tracker.IsVisited(i)).To(BeFalse())
		}
	})

	It("should not grow into a smaller capacity", func() {
		Expect(func() { tracker.Grow(3) }).To(Panic())
	})

	It("should panic on out-of-range indices", func() {
		Expect(func() { tracker.IsVisited(5) }).To(Panic())
		Expect(func() { tracker.IsVisited(-1) }).To(Panic())
		Expect(func() { tracker.SetVisited(5) }).To(Panic())
		Expect(func() { tracker.SetAndGetVisited(5) }).To(Panic())
		Expect(func() { tracker.SetVisitedRacing(5) }).To(Panic())
		Expect(func() { tracker.SetAndGetVisitedRacing(5) }).To(Panic())
	})

	It("should panic on negative capacity", func() {
		Expect(func() { NewTracker[uint32](-1) }).To(Panic())
	})

	It("should support an empty tracker", func() {
		empty := NewTracker[uint32](0)

		Expect(empty.Cap()).To(Equal(0))
		Expect(func() { empty.IsVisited(0) }).To(Panic())

		empty.Clear()
	})

	It("should survive generation counter saturation", func() {
		narrow := NewTracker[uint8](5)

		for round := 0; round < 300; round++ {
			for i := 0; i < 5; i++ {
				Expect(narrow.IsVisited(i)).To(BeFalse())
			}

			narrow.SetVisited(round % 5)
			Expect(narrow.IsVisited(round % 5)).To(BeTrue())

			narrow.Clear()
		}

		for i := 0; i < 5; i++ {
			Expect(narrow.IsVisited(i)).To(BeFalse())
		}
	})

	It("should not leak marks across the re-zeroing boundary", func() {
		narrow := NewTracker[uint8](3)

		// Index 0 is marked only in the very first round. It must not
		// resurface when the generation counter wraps 254 rounds later.
		narrow.SetVisited(0)

		for round := 0; round < 260; round++ {
			narrow.Clear()
			Expect(narrow.IsVisited(0)).To(BeFalse())
			Expect(narrow.IsVisited(1)).To(BeFalse())
			Expect(narrow.IsVisited(2)).To(BeFalse())
		}
	})
})
