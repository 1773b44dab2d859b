// Command famctl replays bank statements against a household account from the terminal.
package main

func main() {
	Execute()
}
