// Command ssgpath turns a model checker's state-space graph into test paths.
package main

func main() {
	Execute()
}
