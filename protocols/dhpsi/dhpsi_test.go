package dhpsi

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/blindset/psi/internal/test"
	"github.com/blindset/psi/pkg/math/curve"
	"github.com/blindset/psi/pkg/party"
	"github.com/blindset/psi/pkg/pool"
	"github.com/blindset/psi/pkg/protocol"
	"github.com/blindset/psi/pkg/psi"
)

func items(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func runIntersection(t *testing.T, aliceItems, bobItems [][]byte) (*Result, *Result) {
	t.Helper()

	pl := pool.NewPool(0)
	defer pl.TearDown()

	partyIDs := party.NewIDSlice([]party.ID{"alice", "bob"})

	h0, err := protocol.NewTwoPartyHandler(Start(partyIDs[0], partyIDs[1], aliceItems, pl), []byte("session"), true)
	require.NoError(t, err)
	h1, err := protocol.NewTwoPartyHandler(Start(partyIDs[1], partyIDs[0], bobItems, pl), []byte("session"), false)
	require.NoError(t, err)

	network := test.NewNetwork(partyIDs)
	var g errgroup.Group
	g.Go(func() error {
		test.HandlerLoop(partyIDs[0], h0, network)
		return nil
	})
	g.Go(func() error {
		test.HandlerLoop(partyIDs[1], h1, network)
		return nil
	})
	require.NoError(t, g.Wait())

	r0, err := h0.Result()
	require.NoError(t, err)
	r1, err := h1.Result()
	require.NoError(t, err)

	result0, ok := r0.(*Result)
	require.True(t, ok)
	result1, ok := r1.(*Result)
	require.True(t, ok)
	return result0, result1
}

func TestPartialOverlap(t *testing.T) {
	alice, bob := runIntersection(t,
		items("a", "s1", "a2", "s2"),
		items("b1", "s1", "b2", "s2"),
	)

	require.Equal(t, 2, alice.Size())
	require.Equal(t, 2, bob.Size())
	for _, shared := range []string{"s1", "s2"} {
		d := psi.DigestItem([]byte(shared))
		assert.True(t, alice.Contains(d))
		assert.True(t, bob.Contains(d))
	}
	// both parties derive the same double blinded representation
	assert.Equal(t, alice.Points, bob.Points)
}

func TestDisjointSets(t *testing.T) {
	alice, bob := runIntersection(t,
		items("a1", "a2", "a3"),
		items("b1", "b2"),
	)
	assert.True(t, alice.IsEmpty())
	assert.True(t, bob.IsEmpty())
}

func TestIdenticalSets(t *testing.T) {
	alice, bob := runIntersection(t,
		items("x", "y", "z"),
		items("z", "y", "x"),
	)
	assert.Equal(t, 3, alice.Size())
	assert.Equal(t, alice.Points, bob.Points)
}

func TestStartRejectsEmptySet(t *testing.T) {
	_, err := protocol.NewTwoPartyHandler(Start("alice", "bob", nil, nil), nil, true)
	require.ErrorIs(t, err, psi.ErrEmptyInput)
}

func TestStartRejectsSelfIntersection(t *testing.T) {
	_, err := protocol.NewTwoPartyHandler(Start("alice", "alice", items("a"), nil), nil, true)
	require.Error(t, err)
}

func TestDeterministicWithSeededRand(t *testing.T) {
	set0, set1 := items("s1", "s2", "u"), items("s1", "s2", "v")

	run := func() *Result {
		partyIDs := party.NewIDSlice([]party.ID{"alice", "bob"})
		h0, err := protocol.NewTwoPartyHandler(
			StartWithRand(partyIDs[0], partyIDs[1], set0, nil, test.Rand("alice seed")), []byte("session"), true)
		require.NoError(t, err)
		h1, err := protocol.NewTwoPartyHandler(
			StartWithRand(partyIDs[1], partyIDs[0], set1, nil, test.Rand("bob seed")), []byte("session"), false)
		require.NoError(t, err)

		network := test.NewNetwork(partyIDs)
		var g errgroup.Group
		g.Go(func() error {
			test.HandlerLoop(partyIDs[0], h0, network)
			return nil
		})
		g.Go(func() error {
			test.HandlerLoop(partyIDs[1], h1, network)
			return nil
		})
		require.NoError(t, g.Wait())

		r, err := h0.Result()
		require.NoError(t, err)
		return r.(*Result)
	}

	first := run()
	second := run()
	require.Equal(t, 2, first.Size())
	// identical seeds make the double blinded points themselves repeat
	assert.Equal(t, first.Points, second.Points)
}

func TestMalformedPointAborts(t *testing.T) {
	h0, err := protocol.NewTwoPartyHandler(Start("alice", "bob", items("a"), nil), []byte("session"), true)
	require.NoError(t, err)
	h1, err := protocol.NewTwoPartyHandler(Start("bob", "alice", items("b"), nil), []byte("session"), false)
	require.NoError(t, err)

	msg, ok := <-h0.Listen()
	require.True(t, ok)

	// replace the payload with an encoding that is not a group element
	var bad curve.Compressed
	for i := range bad {
		bad[i] = 0xff
	}
	data, err := cbor.Marshal(&message2{Points: []curve.Compressed{bad}})
	require.NoError(t, err)
	msg.Data = data

	h1.Accept(msg)

	_, err = h1.Result()
	require.Error(t, err)
	require.ErrorIs(t, err, curve.ErrInvalidPoint)
}
