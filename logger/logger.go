// Package logger provides adapters for popular logger libraries to work with diskbtree's Logger interface.
//
// The adapters allow you to use your existing logger with diskbtree without writing boilerplate.
// Note that the standard library's slog.Logger already implements diskbtree.Logger directly.
//
// Example with zap:
//
//	import (
//	    "diskbtree"
//	    "diskbtree/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewDevelopment()
//
//	    tree, err := diskbtree.New[int](64, diskbtree.WithLogger(logger.NewZap(zapLogger)))
//	    if err != nil {
//	        panic(err)
//	    }
//	    tree.Insert(42)
//	}
package logger
