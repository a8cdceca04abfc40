// Package linear provides online linear models trained with stochastic gradient descent.
package linear
