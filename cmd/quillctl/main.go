// quillctl is the command-line client for the QuillPress publishing platform.
package main

import "github.com/quillpress/quillctl/cmd/quillctl/cmd"

func main() {
	cmd.Execute()
}
