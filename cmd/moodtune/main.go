// Command moodtune estimates moods from text or audio and suggests music for them.
package main

import "github.com/justestif/go-moodtune/internal/cli"

func main() {
	cli.Execute()
}
