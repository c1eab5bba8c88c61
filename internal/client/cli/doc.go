// Package cli provides the command-line download client.
//
// Running the root command with no arguments logs in and saves every
// category as <output>/<Category>.csv, printing a summary table. The exit
// status is non-zero when the login or any download failed.
//
//	vitibrasil-client                       # all categories
//	vitibrasil-client download Producao     # selected categories
//	vitibrasil-client login                 # print an access token
//	vitibrasil-client categories            # list category keys
package cli
