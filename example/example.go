// Command example runs a private set intersection between two in-process
// parties connected by an in-memory network.
package main

import (
	"fmt"
	"sync"

	"github.com/blindset/psi/internal/test"
	"github.com/blindset/psi/pkg/party"
	"github.com/blindset/psi/pkg/pool"
	"github.com/blindset/psi/pkg/protocol"
	"github.com/blindset/psi/protocols/dhpsi"
)

// Intersect runs one side of the protocol until completion and returns the
// intersection as seen by that party.
func Intersect(id, other party.ID, items [][]byte, n *test.Network, pl *pool.Pool, leader bool) (*dhpsi.Result, error) {
	h, err := protocol.NewTwoPartyHandler(dhpsi.Start(id, other, items, pl), []byte("example-session"), leader)
	if err != nil {
		return nil, err
	}
	test.HandlerLoop(id, h, n)
	r, err := h.Result()
	if err != nil {
		return nil, err
	}
	return r.(*dhpsi.Result), nil
}

func main() {
	ids := party.NewIDSlice([]party.ID{"alice", "bob"})
	net := test.NewNetwork(ids)

	pl := pool.NewPool(0)
	defer pl.TearDown()

	aliceItems := [][]byte{
		[]byte("apricot"),
		[]byte("strawberry"),
		[]byte("cherry"),
		[]byte("melon"),
	}
	bobItems := [][]byte{
		[]byte("banana"),
		[]byte("strawberry"),
		[]byte("melon"),
	}

	var wg sync.WaitGroup
	results := make([]*dhpsi.Result, 2)
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = Intersect(ids[0], ids[1], aliceItems, net, pl, true)
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = Intersect(ids[1], ids[0], bobItems, net, pl, false)
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			fmt.Printf("party %s: %v\n", ids[i], err)
			return
		}
	}

	fmt.Printf("intersection size: %d\n", results[0].Size())
	for _, d := range results[0].Digests {
		fmt.Printf("common item digest: %s\n", d)
	}
}
