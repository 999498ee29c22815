// Command vragent is the reasoning bridge between a VR world simulator and a
// local Ollama model.
package main

func main() {
	Execute()
}
