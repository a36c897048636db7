/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package core

import (
	"context"
	"fmt"
	"strings"

	. "github.com/Comcast/spamscan/util/testutil"
)

// Example demonstrates Walk()ing.
func Example() {

	b := NewBuilder("tickets")
	var (
		start = b.State("start")
		hash  = b.State("hash")
		num   = b.State("num")
	)
	b.Edge(start, Char('#'), hash, ResetID)
	b.Go(start, Any(), start)
	b.Edge(hash, Digits(), num, FoldDigit)
	b.Go(hash, Any(), start)
	b.Edge(num, Digits(), num, FoldDigit)
	b.Edge(num, Char('!'), start, Flag)
	b.Go(num, Any(), start)

	g, err := b.Compile()
	if err != nil {
		panic(err)
	}

	ctl := &Control{
		Trace: func(g *Graph, s Stride) {
			fmt.Printf("%d %s -%s-> %s", s.Offset, g.NameOf(s.From), Quote(s.Symbol), g.NameOf(s.To))
			if s.Action != NoAction {
				fmt.Printf(" (%s)", s.Action)
			}
			fmt.Println()
		},
	}

	acc := NewAccumulators()
	walked, err := g.Walk(context.Background(), strings.NewReader("x#12!#3?"), acc, ctl)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s after %d symbols: %s\n", walked.StoppedBecause, walked.Symbols, JS(acc.Flagged))

	// Output:
	// 0 start -'x'-> start
	// 1 start -'#'-> hash (reset)
	// 2 hash -'1'-> num (digit)
	// 3 num -'2'-> num (digit)
	// 4 num -'!'-> start (flag)
	// 5 start -'#'-> hash (reset)
	// 6 hash -'3'-> num (digit)
	// 7 num -'?'-> start
	// done after 8 symbols: [12]
}
