// comm.go --  This file is part of goCCSD project.
// Mirzaeva Irina, 2023
//
//	goCCSD is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------

// Package comm provides the blocking point-to-point and broadcast operations
// the solver ranks use to exchange whole tensors.
package comm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Coordinator is the rank that gathers intermediates and owns the amplitudes.
const Coordinator = 0

var (
	ErrBadRank      = errors.New("comm: rank out of range")
	ErrSizeMismatch = errors.New("comm: payload length mismatch")
)

// Topic separates transfers of different tensor kinds so that two in-flight
// messages between the same pair of ranks never match each other.
type Topic string

// Topology describes the calling rank and the size of its group.
type Topology struct {
	Rank int
	Size int
}

// IsCoordinator reports whether the rank aggregates results.
func (t Topology) IsCoordinator() bool { return t.Rank == Coordinator }

// Comm is the collective interface seen by one rank. All operations block
// until the exchange is complete or ctx is done.
type Comm interface {
	Topology() Topology
	Send(ctx context.Context, topic Topic, dst int, buf []float64) error
	Recv(ctx context.Context, topic Topic, src int, buf []float64) error
	// Bcast copies root's buf into buf on every other rank.
	Bcast(ctx context.Context, topic Topic, root int, buf []float64) error
}

type route struct {
	src, dst int
	topic    Topic
}

// Fabric connects a fixed group of in-process ranks.
type Fabric struct {
	size int

	mu    sync.Mutex
	links map[route]chan []float64
}

// NewFabric creates a fabric for size ranks.
func NewFabric(size int) (*Fabric, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: group size %d", ErrBadRank, size)
	}
	return &Fabric{size: size, links: make(map[route]chan []float64)}, nil
}

func (f *Fabric) Size() int { return f.size }

// Endpoint returns the Comm for one rank.
func (f *Fabric) Endpoint(rank int) (Comm, error) {
	if rank < 0 || rank >= f.size {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadRank, rank, f.size)
	}
	return &endpoint{fabric: f, top: Topology{Rank: rank, Size: f.size}}, nil
}

func (f *Fabric) link(r route) chan []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.links[r]
	if !ok {
		// unbuffered: sender and receiver rendezvous
		ch = make(chan []float64)
		f.links[r] = ch
	}
	return ch
}

type endpoint struct {
	fabric *Fabric
	top    Topology
}

func (e *endpoint) Topology() Topology { return e.top }

func (e *endpoint) checkPeer(peer int) error {
	if peer < 0 || peer >= e.top.Size {
		return fmt.Errorf("%w: peer %d of %d", ErrBadRank, peer, e.top.Size)
	}
	return nil
}

func (e *endpoint) Send(ctx context.Context, topic Topic, dst int, buf []float64) error {
	if err := e.checkPeer(dst); err != nil {
		return err
	}
	if dst == e.top.Rank {
		return nil
	}
	payload := append([]float64(nil), buf...)
	ch := e.fabric.link(route{src: e.top.Rank, dst: dst, topic: topic})
	select {
	case ch <- payload:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send %s to %d: %w", topic, dst, ctx.Err())
	}
}

func (e *endpoint) Recv(ctx context.Context, topic Topic, src int, buf []float64) error {
	if err := e.checkPeer(src); err != nil {
		return err
	}
	if src == e.top.Rank {
		return nil
	}
	ch := e.fabric.link(route{src: src, dst: e.top.Rank, topic: topic})
	select {
	case payload := <-ch:
		if len(payload) != len(buf) {
			return fmt.Errorf("%w: %s from %d carries %d values, want %d",
				ErrSizeMismatch, topic, src, len(payload), len(buf))
		}
		copy(buf, payload)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("recv %s from %d: %w", topic, src, ctx.Err())
	}
}

func (e *endpoint) Bcast(ctx context.Context, topic Topic, root int, buf []float64) error {
	if err := e.checkPeer(root); err != nil {
		return err
	}
	if e.top.Rank != root {
		return e.Recv(ctx, topic, root, buf)
	}
	for dst := 0; dst < e.top.Size; dst++ {
		if dst == root {
			continue
		}
		if err := e.Send(ctx, topic, dst, buf); err != nil {
			return err
		}
	}
	return nil
}

// Run starts size ranks executing fn and waits for all of them. The first
// failing rank cancels the shared context, which releases every peer blocked
// in a transfer.
func Run(ctx context.Context, size int, fn func(ctx context.Context, c Comm) error) error {
	fabric, err := NewFabric(size)
	if err != nil {
		return err
	}
	// every endpoint exists before the first rank starts
	ends := make([]Comm, size)
	for rank := range ends {
		if ends[rank], err = fabric.Endpoint(rank); err != nil {
			return err
		}
	}
	g, gCtx := errgroup.WithContext(ctx)
	for _, c := range ends {
		g.Go(func() error {
			return fn(gCtx, c)
		})
	}
	return g.Wait()
}
