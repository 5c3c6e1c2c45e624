package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"github.com/go-faker/faker/v4/pkg/interfaces"
	"github.com/go-faker/faker/v4/pkg/options"

	"diskbtree"
)

// seedRange bounds generated keys
const seedRange = 1_000_000

type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	tree    *diskbtree.Tree[int]

	ok   *color.Color
	warn *color.Color
	info *color.Color
}

func NewCli(s *bufio.Scanner, out io.Writer, t *diskbtree.Tree[int]) *Cli {
	return &Cli{
		scanner: s,
		out:     out,
		tree:    t,
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
	}
}

func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
}

func (c *Cli) printHelp() {
	fmt.Fprintf(c.out, `
B-Tree CLI (t=%d)

Available Commands:
  INSERT <key>...  Insert integer keys
  DELETE <key>...  Delete integer keys
  SEARCH <key>     Report whether a key is present
  DUMP             Print all keys in ascending order
  STATS            Print size, height, nodes and simulated disk I/O
  RESET            Zero the disk I/O counters
  CHECK            Validate the tree invariants
  SEED <n>         Insert n random keys
  LOAD <n>         Bulk load keys 1..n into an empty tree
  HELP             Show this message
  EXIT             Terminate this session
`, c.tree.MinDegree())
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

// processInput runs one command line. Returns false when the session should end.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		c.warn.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "insert":
		c.processInsertCommand(fields[1:])
	case "delete":
		c.processDeleteCommand(fields[1:])
	case "search":
		c.processSearchCommand(fields[1:])
	case "dump":
		fmt.Fprintln(c.out, c.tree.Keys())
	case "stats":
		c.processStatsCommand()
	case "reset":
		c.tree.ResetIOStats()
		c.ok.Fprintln(c.out, "I/O counters reset.")
	case "check":
		if err := c.tree.Validate(); err != nil {
			c.warn.Fprintln(c.out, err)
		} else {
			c.ok.Fprintln(c.out, "Tree is valid.")
		}
	case "seed":
		c.processSeedCommand(fields[1:])
	case "load":
		c.processLoadCommand(fields[1:])
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) parseKeys(args []string) ([]int, bool) {
	keys := make([]int, 0, len(args))
	for _, arg := range args {
		k, err := strconv.Atoi(arg)
		if err != nil {
			c.warn.Fprintf(c.out, "Invalid key %q: not an integer\n", arg)
			return nil, false
		}
		keys = append(keys, k)
	}
	return keys, true
}

func (c *Cli) processInsertCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: INSERT <key>...")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	for _, k := range keys {
		if c.tree.Insert(k) {
			c.ok.Fprintf(c.out, "Inserted %d.\n", k)
		} else {
			c.warn.Fprintf(c.out, "Key %d already exists.\n", k)
		}
	}
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: DELETE <key>...")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	for _, k := range keys {
		if c.tree.Delete(k) {
			c.ok.Fprintf(c.out, "Deleted %d.\n", k)
		} else {
			c.warn.Fprintf(c.out, "Key %d not found.\n", k)
		}
	}
}

func (c *Cli) processSearchCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: SEARCH <key>")
		return
	}
	keys, ok := c.parseKeys(args)
	if !ok {
		return
	}
	loc, found := c.tree.Get(keys[0])
	if !found {
		c.warn.Fprintln(c.out, "Key not found.")
		return
	}
	c.ok.Fprintf(c.out, "Found in node %d at index %d.\n", loc.Node, loc.Index)
}

func (c *Cli) processStatsCommand() {
	s := c.tree.IOStats()
	c.info.Fprintf(c.out, "size=%d height=%d nodes=%d\n", c.tree.Len(), c.tree.Height(), c.tree.Nodes())
	c.info.Fprintf(c.out, "reads=%d writes=%d\n", s.Reads, s.Writes)
	if s.PoolHits+s.PoolMisses > 0 {
		c.info.Fprintf(c.out, "pool hits=%d misses=%d evictions=%d\n", s.PoolHits, s.PoolMisses, s.PoolEvictions)
	}
}

func (c *Cli) processSeedCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: SEED <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		c.warn.Fprintf(c.out, "Invalid count %q\n", args[0])
		return
	}
	c.seed(n)
}

func (c *Cli) processLoadCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: LOAD <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		c.warn.Fprintf(c.out, "Invalid count %q\n", args[0])
		return
	}

	keys := make([]int, n)
	for i := range keys {
		keys[i] = i + 1
	}
	if err := c.tree.BulkLoad(keys); err != nil {
		c.warn.Fprintf(c.out, "Load failed: %v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "Loaded %d keys.\n", n)
}

type seedKey struct {
	Key int
}

// seed inserts n random keys and reports how many were new
func (c *Cli) seed(n int) {
	bounds := options.WithRandomIntegerBoundaries(interfaces.RandomIntegerBoundary{Start: 0, End: seedRange})

	added := 0
	for i := 0; i < n; i++ {
		var k seedKey
		if err := faker.FakeData(&k, bounds); err != nil {
			c.warn.Fprintf(c.out, "Seed failed: %v\n", err)
			return
		}
		if c.tree.Insert(k.Key) {
			added++
		}
	}
	c.ok.Fprintf(c.out, "Seeded %d keys (%d new).\n", n, added)
}
