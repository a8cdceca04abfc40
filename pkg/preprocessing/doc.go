// Package preprocessing provides online feature transformers to use as pipeline steps.
package preprocessing
