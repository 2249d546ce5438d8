package main

import "github.com/KaramelBytes/zillow-eda/cmd"

func main() {
	cmd.Execute()
}
