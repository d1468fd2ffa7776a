// example_test.go: Executable examples for godoc
//
// These examples appear in the generated documentation and are executable.
// Run with: go test -run Example

package euros_test

import (
	"fmt"
	"io"

	"github.com/agilira/euros"
)

// ExampleNew demonstrates basic split producer/consumer usage.
func ExampleNew() {
	rb := euros.New[int](4)
	prod, cons := rb.Split()

	prod.TryPush(1)
	prod.TryPush(2)
	prod.TryPush(3)

	for {
		v, ok := cons.TryPop()
		if !ok {
			break
		}
		fmt.Println(v)
	}
	// Output:
	// 1
	// 2
	// 3
}

// ExampleRingBuffer_PushOverwrite demonstrates overwriting push: the newest
// item always lands, the oldest one gives way.
func ExampleRingBuffer_PushOverwrite() {
	rb := euros.New[string](2)

	rb.PushOverwrite("a")
	rb.PushOverwrite("b")
	if popped, overwrote := rb.PushOverwrite("c"); overwrote {
		fmt.Println("displaced:", popped)
	}

	for v := range rb.PopIter() {
		fmt.Println(v)
	}
	// Output:
	// displaced: a
	// b
	// c
}

// ExampleProducer_Freeze demonstrates batched publication: staged pushes
// become visible to the consumer all at once on Commit.
func ExampleProducer_Freeze() {
	rb := euros.New[int](16)
	prod, cons := rb.SplitDirect()

	fp := prod.Freeze()
	for i := 0; i < 5; i++ {
		fp.TryPush(i)
	}
	fmt.Println("visible before commit:", cons.OccupiedLen())

	fp.Commit()
	fmt.Println("visible after commit:", cons.OccupiedLen())
	// Output:
	// visible before commit: 0
	// visible after commit: 5
}

// ExampleRingBuffer_SplitBlocking demonstrates the blocking mode used for
// goroutine pipelines: the consumer parks until items arrive and observes
// end of stream when the producer closes.
func ExampleRingBuffer_SplitBlocking() {
	rb := euros.New[string](8)
	bp, bc := rb.SplitBlocking()

	go func() {
		defer bp.Close()
		bp.Push("east")
		bp.Push("wind")
	}()

	for {
		v, err := bc.Pop()
		if err != nil {
			break // euros.ErrClosed: producer gone, buffer drained
		}
		fmt.Println(v)
	}
	// Output:
	// east
	// wind
}

// ExampleNewWriter demonstrates the byte-stream adapters.
func ExampleNewWriter() {
	rb := euros.New[byte](64)
	prod, cons := rb.Split()
	w, r := euros.NewWriter(prod), euros.NewReader(cons)

	w.WriteString("hello, ring")
	w.Close()

	data, _ := io.ReadAll(r)
	fmt.Println(string(data))
	// Output:
	// hello, ring
}

// ExampleTransfer demonstrates piping one buffer into another.
func ExampleTransfer() {
	src := euros.New[int](8)
	dst := euros.New[int](8)
	src.PushSlice([]int{1, 2, 3})

	moved := euros.Transfer[int](src, dst, -1)
	fmt.Println("moved:", moved)

	for v := range dst.PopIter() {
		fmt.Println(v)
	}
	// Output:
	// moved: 3
	// 1
	// 2
	// 3
}
