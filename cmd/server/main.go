package main

import "guardops/internal/app/server"

func main() {
	server.Run()
}
