// Package wallet is the wallet manager graph: a Manager owning one Repository
// per chain, each Repository owning one ChainWallet per configured wallet, and
// one MainWallet per wallet holding the extension client.
//
// Nodes never render anything. They report progress by pushing on the action
// tables installed with SetActions; a node without an action table simply
// keeps its state to itself.
package wallet
