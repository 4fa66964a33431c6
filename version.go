package main

// Version is injected at build time via -ldflags.
var Version = "dev"
