package main

import "tweet-server/cli"

func main() {
	cli.Execute()
}
