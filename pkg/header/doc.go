// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package header provides the Kubernetes-style resource header shared by
// dough configuration documents, results and comparisons.
//
// A configuration file may be wrapped in a header:
//
//	kind: DoughConfig
//	apiVersion: dough.doughlab.dev/v1alpha1
//	metadata:
//	  name: friday-pizza
//	spec:
//	  recipeStyle: neapolitan
//	  numberOfBalls: 6
//
// Results are emitted with kind DoughResult. Headers never carry timestamps.
package header
