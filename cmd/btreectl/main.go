package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"diskbtree"
	"diskbtree/logger"
)

var (
	degree   = flag.Int("degree", 0, "minimum degree t (0 derives it from the OS page size)")
	poolSize = flag.Int("pool", 0, "buffer pool size in nodes (0 disables the pool)")
	seed     = flag.Int("seed", 0, "number of random keys to preload")
	logKind  = flag.String("log", "none", "structural event logging: none, logrus or zap")
)

func newLogger(kind string) (diskbtree.Logger, error) {
	switch kind {
	case "", "none":
		return diskbtree.DiscardLogger{}, nil
	case "logrus":
		l := logrus.New()
		l.SetLevel(logrus.DebugLevel)
		return logger.NewLogrus(l), nil
	case "zap":
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return logger.NewZap(l), nil
	default:
		return nil, fmt.Errorf("unknown logger %q", kind)
	}
}

func main() {
	flag.Parse()

	lg, err := newLogger(*logKind)
	if err != nil {
		log.Fatal(err)
	}

	t := *degree
	if t == 0 {
		t = diskbtree.DegreeForPage(0, 0)
	}

	tree, err := diskbtree.New[int](t,
		diskbtree.WithLogger(lg),
		diskbtree.WithBufferPool(*poolSize),
	)
	if err != nil {
		log.Fatal(err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	demo := NewCli(scanner, os.Stdout, tree)
	if *seed > 0 {
		demo.seed(*seed)
	}
	demo.Start()
}
