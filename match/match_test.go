package match_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/harness/match"
)

type coded struct {
	code string
}

func (e *coded) Error() string { return "coded failure" }

func (e *coded) Code() string { return e.code }

func TestBeAny_MatchesEverything(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, value := range []any{nil, 0, "text", errors.New("boom")} {
		ok, err := match.BeAny.Match(value)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(ok).To(BeTrue(), "BeAny should match %v", value)
	}
}

func TestHaveErrorCode(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.HaveErrorCode("EPIPE")

	ok, err := matcher.Match(&coded{code: "EPIPE"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, err = matcher.Match(fmt.Errorf("wrapped: %w", &coded{code: "EPIPE"}))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue(), "code should be found through the wrap chain")

	ok, err = matcher.Match(errors.Join(errors.New("sibling"), &coded{code: "EPIPE"}))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue(), "code should be found inside a joined branch")

	ok, err = matcher.Match(&coded{code: "ECONNRESET"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())

	ok, err = matcher.Match(errors.New("no code at all"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())

	_, err = matcher.Match("not an error")
	g.Expect(err).To(HaveOccurred(), "non-errors are a type mismatch")
}

func TestMatchText(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.MatchText(`timeout after \d+ms`)

	ok, err := matcher.Match("timeout after 250ms")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, err = matcher.Match(errors.New("timeout after 5ms"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue(), "errors should match on their text")

	ok, err = matcher.Match("no timeout here")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())

	_, err = matcher.Match(42)
	g.Expect(err).To(HaveOccurred(), "non-text values are a type mismatch")
}

func TestSatisfy(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Satisfy(func(port int) error {
		if port <= 0 {
			return fmt.Errorf("expected positive port, got %d", port)
		}

		return nil
	})

	ok, err := matcher.Match(8080)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, err = matcher.Match(-1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
	g.Expect(matcher.FailureMessage(-1)).To(ContainSubstring("positive port"))

	_, err = matcher.Match("not an int")
	g.Expect(err).To(HaveOccurred(), "wrong types are a type mismatch")
}
